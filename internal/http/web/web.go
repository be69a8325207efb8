// Package web holds the server-rendered pages, embedded into the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	html "github.com/gofiber/template/html/v2"
)

//go:embed templates
var files embed.FS

// Engine returns the html view engine for fiber.Config.Views.
func Engine() *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
