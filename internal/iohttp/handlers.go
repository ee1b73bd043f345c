package iohttp

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gnames/gedgraph/internal/ioimport"
	"github.com/gnames/gedgraph/pkg/family"
)

// defaultPageSize is the page size of the person list.
const defaultPageSize = 50

// multipartOverhead is the room left for multipart boundaries and form
// fields on top of the file size limit.
const multipartOverhead = 64 * 1024

type handler struct {
	RouterConfig
}

func (h *handler) upload(c *gin.Context) {
	maxSize := h.Config.Import.MaxFileSize
	maxBody := int64(maxSize) + multipartOverhead
	if c.Request.ContentLength > maxBody {
		RespondError(c, ioimport.FileTooLargeError(
			"upload", c.Request.ContentLength, maxSize,
		))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, ioimport.FileTooLargeError("upload", maxBody, maxSize))
			return
		}
		RespondError(c, family.InvalidParameterError("file", "multipart field 'file' is required"))
		return
	}
	if err = ioimport.ValidateUpload(fh.Filename, fh.Size, maxSize); err != nil {
		RespondError(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, int64(maxSize)+1))
	if err != nil {
		RespondError(c, err)
		return
	}

	res, err := h.Importer.Import(
		c.Request.Context(), data, fh.Filename, c.PostForm("source_name"),
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *handler) sources(c *gin.Context) {
	res, err := h.Catalog.Sources(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *handler) source(c *gin.Context) {
	res, err := h.Catalog.Source(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *handler) deleteSource(c *gin.Context) {
	if err := h.Catalog.DeleteSource(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) sourceStatistics(c *gin.Context) {
	res, err := h.Catalog.SourceStatistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *handler) persons(c *gin.Context) {
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		RespondError(c, err)
		return
	}
	limit, err := intQuery(c, "limit", defaultPageSize)
	if err != nil {
		RespondError(c, err)
		return
	}

	res, err := h.Catalog.ListPersons(
		c.Request.Context(), c.Query("source_id"), offset, limit,
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	summaries := make([]family.Summary, len(res))
	for i := range res {
		summaries[i] = family.NewSummary(&res[i])
	}
	RespondOK(c, summaries)
}

func (h *handler) search(c *gin.Context) {
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		RespondError(c, err)
		return
	}
	res, err := h.Searcher.Search(
		c.Request.Context(), c.Query("q"), c.Query("source_id"), limit,
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *handler) person(c *gin.Context) {
	res, err := h.Catalog.PersonDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *handler) tree(c *gin.Context) {
	gens, err := intQuery(c, "generations", h.Config.Query.DefaultGenerations)
	if err != nil {
		RespondError(c, err)
		return
	}
	res, err := h.Traverser.Tree(
		c.Request.Context(), c.Param("id"), gens, c.Query("source_id"),
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *handler) ancestors(c *gin.Context) {
	gens, err := intQuery(c, "generations", h.Config.Query.DefaultGenerations)
	if err != nil {
		RespondError(c, err)
		return
	}
	res, err := h.Traverser.Ancestors(c.Request.Context(), c.Param("id"), gens)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *handler) descendants(c *gin.Context) {
	gens, err := intQuery(c, "generations", h.Config.Query.DefaultGenerations)
	if err != nil {
		RespondError(c, err)
		return
	}
	res, err := h.Traverser.Descendants(c.Request.Context(), c.Param("id"), gens)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *handler) path(c *gin.Context) {
	depth, err := intQuery(c, "max_depth", 0)
	if err != nil {
		RespondError(c, err)
		return
	}
	res, err := h.Traverser.RelationshipPath(
		c.Request.Context(), c.Param("id"), c.Param("other"), depth,
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

// intQuery reads an integer query parameter, def when it is absent.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return def, nil
	}
	res, err := strconv.Atoi(v)
	if err != nil {
		return 0, family.InvalidParameterError(name, "must be an integer")
	}
	return res, nil
}
