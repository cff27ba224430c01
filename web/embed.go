package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Static retorna os arquivos públicos embutidos no binário (index.html, js, css)
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
