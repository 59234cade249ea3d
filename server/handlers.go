package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	vividvalid "github.com/jaainil/vivid-valid"
)

// optionsDTO mirrors the recognized request options. Pointers distinguish
// "absent" from "false" so absent fields keep their defaults.
type optionsDTO struct {
	CheckSyntax        *bool  `json:"checkSyntax"`
	CheckDomain        *bool  `json:"checkDomain"`
	CheckMX            *bool  `json:"checkMX"`
	CheckSMTP          *bool  `json:"checkSMTP"`
	CheckDisposable    *bool  `json:"checkDisposable"`
	CheckTypos         *bool  `json:"checkTypos"`
	StrictMode         *bool  `json:"strictMode"`
	UseStrictMode      *bool  `json:"useStrictMode"` // accepted alias
	AllowInternational *bool  `json:"allowInternational"`
	SMTPTimeoutMs      *int   `json:"smtpTimeout"`
	SMTPFromDomain     string `json:"smtpFromDomain"`
	EnableCache        *bool  `json:"enableCache"`
	BatchSize          *int   `json:"batchSize"`
}

// apply overlays the DTO onto base. checkSyntax is accepted on the wire
// but the syntax stage always runs; a parsed address is the prerequisite
// of every other stage.
func (o *optionsDTO) apply(base vividvalid.Options) vividvalid.Options {
	if o == nil {
		return base
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&base.CheckDomain, o.CheckDomain)
	setBool(&base.CheckMX, o.CheckMX)
	setBool(&base.CheckSMTP, o.CheckSMTP)
	setBool(&base.CheckDisposable, o.CheckDisposable)
	setBool(&base.CheckTypos, o.CheckTypos)
	setBool(&base.StrictMode, o.StrictMode)
	setBool(&base.StrictMode, o.UseStrictMode)
	setBool(&base.AllowInternational, o.AllowInternational)
	setBool(&base.EnableCache, o.EnableCache)
	if o.SMTPTimeoutMs != nil && *o.SMTPTimeoutMs > 0 {
		base.SMTPTimeout = time.Duration(*o.SMTPTimeoutMs) * time.Millisecond
	}
	if o.SMTPFromDomain != "" {
		base.SMTPFromDomain = o.SMTPFromDomain
	}
	return base
}

type validateRequest struct {
	Email   string      `json:"email"`
	Options *optionsDTO `json:"options"`
}

type bulkRequest struct {
	Emails  []string    `json:"emails" validate:"omitempty,dive,max=320"`
	Options *optionsDTO `json:"options"`
}

func (s *Server) handleValidate(c *fiber.Ctx) error {
	var req validateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", "INVALID_BODY")
	}
	if req.Email == "" {
		return badRequest(c, "Email address is required", "MISSING_EMAIL")
	}

	opts := req.Options.apply(vividvalid.DefaultOptions())
	result := s.engine.Validate(c.Context(), req.Email, opts)
	return success(c, result)
}

func (s *Server) handleValidateBulk(c *fiber.Ctx) error {
	var req bulkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", "INVALID_BODY")
	}
	if len(req.Emails) == 0 {
		return badRequest(c, "Email addresses are required", "MISSING_EMAILS")
	}
	if len(req.Emails) > s.cfg.MaxBulkEmails {
		return badRequest(c,
			fmt.Sprintf("Maximum %d emails allowed per bulk request", s.cfg.MaxBulkEmails),
			"TOO_MANY_EMAILS")
	}
	if err := s.validate.Struct(&req); err != nil {
		return badRequest(c, "Invalid request body", "INVALID_BODY")
	}

	bulkOpts := vividvalid.DefaultBulkOptions()
	bulkOpts.Options = req.Options.apply(bulkOpts.Options)
	if req.Options != nil && req.Options.BatchSize != nil && *req.Options.BatchSize > 0 {
		bulkOpts.BatchSize = *req.Options.BatchSize
	}

	report, err := s.engine.ValidateBatch(c.Context(), req.Emails, bulkOpts)
	if err != nil {
		return badRequest(c, err.Error(), "INVALID_BATCH")
	}
	return success(c, report)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

func success(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func badRequest(c *fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
