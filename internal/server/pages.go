package server

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Pages serves fixed HTML documents, read from disk on every request.
type Pages struct {
	dir    string
	logger *slog.Logger
}

func NewPages(dir string, logger *slog.Logger) *Pages {
	if dir == "" {
		dir = "."
	}
	return &Pages{dir: dir, logger: logger}
}

// Handler returns a handler serving the named file.
func (p *Pages) Handler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := os.ReadFile(filepath.Join(p.dir, name))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, fs.ErrNotExist) {
				status = http.StatusNotFound
			} else {
				p.logger.Error("page.read_failed", "page", name, "error", err)
			}
			c.Data(status, "text/html; charset=utf-8", []byte("<h1>"+name+" not found.</h1>"))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", b)
	}
}
