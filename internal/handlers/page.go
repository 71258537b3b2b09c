package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RegisterPage serves the operator UI at "/".
func RegisterPage(r *gin.Engine, d Deps) {
	r.SetHTMLTemplate(pageTemplates)
	rows := gridView()
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Rows":  rows,
			"Board": NewBoardView(d.Board.Snapshot(), d.Board.Columns()),
		})
	})
}
