// Package web serves the embedded browser client.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var static embed.FS

var assets = mustSub(static, "static")

// Index serves the single page document for both the dashboard and the
// redirect landing route; the script picks the view from the path.
func Index(c *gin.Context) {
	data, err := fs.ReadFile(assets, "index.html")
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

func Assets() gin.HandlerFunc {
	fileServer := http.StripPrefix("/assets", http.FileServer(http.FS(assets)))
	return gin.WrapH(fileServer)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
