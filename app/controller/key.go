package controller

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "github.com/vibast-solutions/ms-go-keys/app/dto/http"
	"github.com/vibast-solutions/ms-go-keys/app/middleware"
	"github.com/vibast-solutions/ms-go-keys/app/service"
)

const (
	statusValid   = "valid"
	statusInvalid = "invalid"
)

type KeyController struct {
	keyService *service.KeyService
}

func NewKeyController(keyService *service.KeyService) *KeyController {
	return &KeyController{keyService: keyService}
}

// Status is a plain liveness probe.
func (c *KeyController) Status(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, dto.StatusResponse{
		Status:  "online",
		Message: "Key API is running. Use /generateKey or /api/v1/validateKey",
	})
}

// GenerateKey issues a fresh key and renders the confirmation page the
// requester copies it from. The expiry shown on the page is in the server's
// local timezone; the stored value stays UTC.
func (c *KeyController) GenerateKey(ctx echo.Context) error {
	key := c.keyService.Issue(ctx.Request().Context())
	middleware.KeysIssuedTotal.Inc()

	var page bytes.Buffer
	err := keyPageTemplate.Execute(&page, keyPageData{
		Key:            key.ID,
		ExpiresDisplay: key.ExpiresAt.Local().Format("02/01/2006 at 15:04:05 MST"),
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to render key page")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.HTML(http.StatusOK, page.String())
}

// ValidateKey checks the key query parameter against the store.
func (c *KeyController) ValidateKey(ctx echo.Context) error {
	id := ctx.QueryParam("key")
	if id == "" {
		middleware.KeyValidationsTotal.WithLabelValues("missing").Inc()
		return ctx.JSON(http.StatusBadRequest, dto.ValidateKeyResponse{
			Status:  statusInvalid,
			Message: "No key provided",
		})
	}

	_, err := c.keyService.Validate(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrKeyNotFound) {
			middleware.KeyValidationsTotal.WithLabelValues("not_found").Inc()
			return ctx.JSON(http.StatusNotFound, dto.ValidateKeyResponse{
				Status:  statusInvalid,
				Message: "Key not found",
			})
		}
		if errors.Is(err, service.ErrKeyExpired) {
			middleware.KeyValidationsTotal.WithLabelValues("expired").Inc()
			return ctx.JSON(http.StatusUnauthorized, dto.ValidateKeyResponse{
				Status:  statusInvalid,
				Message: "Key Expired",
			})
		}
		middleware.KeyValidationsTotal.WithLabelValues("malformed").Inc()
		return ctx.JSON(http.StatusInternalServerError, dto.ValidateKeyResponse{
			Status:  statusInvalid,
			Message: "Internal format error",
		})
	}

	middleware.KeyValidationsTotal.WithLabelValues("valid").Inc()
	return ctx.JSON(http.StatusOK, dto.ValidateKeyResponse{
		Status:  statusValid,
		Message: "Access Granted",
	})
}

type keyPageData struct {
	Key            string
	ExpiresDisplay string
}

var keyPageTemplate = template.Must(template.New("keyPage").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Access Key Generated</title>
    <style>
        body { font-family: sans-serif; background-color: #0A0A0C; color: #FFFFFF; text-align: center; padding-top: 50px; }
        .container { max-width: 600px; margin: 0 auto; padding: 30px; background-color: #121214; border-radius: 10px; border: 2px solid #FFFFFF; }
        h1 { color: #FFFFFF; border-bottom: 1px solid rgba(255, 255, 255, 0.2); padding-bottom: 10px; }
        .key-box { background-color: #1E1E22; padding: 20px; border-radius: 8px; margin: 20px 0; border: 1px solid #00FF96; }
        .key-box p { font-size: 1.5em; font-weight: bold; color: #00FF96; word-break: break-all; }
        .info { color: #C8C8C8; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#128273; Your Access Key</h1>
        <p class="info">All done! Copy the key below.</p>
        <div class="key-box">
            <p>{{.Key}}</p>
        </div>
        <p class="info">This key is valid until: <strong>{{.ExpiresDisplay}}</strong></p>
        <p style="margin-top: 30px;">Paste it into the client and you are good to go.</p>
    </div>
</body>
</html>
`))
