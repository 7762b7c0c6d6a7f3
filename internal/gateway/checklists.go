package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/dhabedank/genchecklist/internal/core"
	"github.com/dhabedank/genchecklist/internal/llm"
	"github.com/dhabedank/genchecklist/internal/output"
)

type toggleRequest struct {
	GroupKey string `json:"groupKey"`
	ItemID   string `json:"itemId"`
}

func unknownDomain(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: msgUnknownDomain, Details: c.Param("domain")})
}

func (s *Server) getChecklist(c echo.Context) error {
	d, err := core.ParseDomain(c.Param("domain"))
	if err != nil {
		return unknownDomain(c)
	}
	return c.JSON(http.StatusOK, s.session.Snapshot(d))
}

// postChecklist generates a checklist from the domain's details record and
// installs it in the session. Posting to a domain other than the active one
// switches the view first.
func (s *Server) postChecklist(c echo.Context) error {
	d, err := core.ParseDomain(c.Param("domain"))
	if err != nil {
		return unknownDomain(c)
	}

	details, _ := core.NewDetails(d)
	dec := sonic.ConfigStd.NewDecoder(io.LimitReader(c.Request().Body, maxBodySize))
	if err := dec.Decode(details); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody, Details: err.Error()})
	}
	if err := details.Validate(); err != nil {
		status, resp := classify(err)
		return c.JSON(status, resp)
	}

	if s.session.Active() != d {
		s.session.SwitchView(d)
	}
	if s.generator == nil {
		s.logger.WithError(s.configErr).Error("generation requested but the upstream API key is not configured")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgMissingAPIKey})
	}

	// Generations are not cancelled when the client goes away; a late
	// result is discarded by the session if the view moved on.
	ctx := context.WithoutCancel(c.Request().Context())
	ticket := s.session.Begin(d)
	checklist, genErr := core.Generate(ctx, llm.Direct{Generator: s.generator}, details, core.GenerateOptions{
		Logger: s.logger.WithField("generator", s.generator.Name()),
	})

	if !s.session.Complete(ticket, checklist, genErr) {
		s.logger.WithField("domain", d).Info("discarded generation result for inactive view")
		return c.JSON(http.StatusConflict, ErrorResponse{Error: msgStaleGeneration})
	}
	if genErr != nil {
		status, resp := classify(genErr)
		s.logger.WithFields(log.Fields{"domain": d, "status": status}).WithError(genErr).Warn("checklist generation failed")
		return c.JSON(status, resp)
	}
	return c.JSON(http.StatusOK, s.session.Snapshot(d))
}

func (s *Server) deleteChecklist(c echo.Context) error {
	d, err := core.ParseDomain(c.Param("domain"))
	if err != nil {
		return unknownDomain(c)
	}
	s.session.Clear(d)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) toggleItem(c echo.Context) error {
	d, err := core.ParseDomain(c.Param("domain"))
	if err != nil {
		return unknownDomain(c)
	}

	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
	}
	if !s.session.Toggle(d, req.GroupKey, req.ItemID) {
		s.logger.WithFields(log.Fields{"domain": d, "group": req.GroupKey, "item": req.ItemID}).
			Debug("toggle matched no item")
	}
	return c.JSON(http.StatusOK, s.session.Snapshot(d))
}

// exportChecklist renders the domain's current checklist as a download.
// An empty or missing checklist still yields a document.
func (s *Server) exportChecklist(c echo.Context) error {
	d, err := core.ParseDomain(c.Param("domain"))
	if err != nil {
		return unknownDomain(c)
	}

	adapter, err := output.NewAdapter(c.QueryParam("format"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	checklist := core.Checklist{Domain: d}
	if snap := s.session.Snapshot(d); snap.Checklist != nil {
		checklist = *snap.Checklist
	}
	config := output.DefaultConfig(d)
	config.GeneratedAt = s.now()
	if title := c.QueryParam("title"); title != "" {
		config.Title = title
	}

	var buf bytes.Buffer
	if _, err := adapter.Write(&buf, checklist, config); err != nil {
		s.logger.WithField("domain", d).WithError(err).Error("export failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export checklist."})
	}

	name := output.FileName(d, config.Title, config.GeneratedAt, adapter.Extension())
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	contentType := "application/pdf"
	if adapter.Extension() == "json" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
