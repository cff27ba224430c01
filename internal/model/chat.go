package model

// Mensagens fixas devolvidas ao cliente
const (
	MsgMessageRequired   = "Message is required"
	MsgInvalidJSON       = "Invalid JSON format"
	MsgGenerationFailure = "Failed to generate response"
)

// ChatRequest representa a requisição para o endpoint de chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse representa a resposta de sucesso do endpoint de chat
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse representa qualquer resposta de erro da API.
// Details e Name só são preenchidos em falhas do provedor.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Name    string `json:"name,omitempty"`
}
