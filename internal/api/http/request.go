package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/GriffinCanCode/vcbot/internal/domain/blueprint"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/fetch"
)

var (
	// errNoBlueprint is returned when no source in a request holds a blueprint.
	errNoBlueprint = errors.New("No blueprint specified")
	// errMalformed is returned for bodies that cannot be bound.
	errMalformed = errors.New("malformed request")
)

// Fetcher downloads attachment text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Request is the body of POST /stats and POST /render. It mirrors a chat
// command: the command arguments, an optional attachment and an optional
// message being replied to.
type Request struct {
	Blueprint     string   `json:"blueprint" form:"blueprint"`
	Args          []string `json:"args" form:"args"`
	AttachmentURL string   `json:"attachment_url" form:"attachment_url"`
	Reply         *Reply   `json:"reply" form:"-"`

	attachment *multipart.FileHeader
}

// Reply is the message a command replies to.
type Reply struct {
	Content       string `json:"content"`
	AttachmentURL string `json:"attachment_url"`
}

// bindRequest reads a Request from a JSON, multipart or plain text body.
func bindRequest(c *gin.Context) (*Request, error) {
	var req Request

	switch c.ContentType() {
	case binding.MIMEJSON:
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, fmt.Errorf("%w: %w", errMalformed, err)
		}
	case binding.MIMEMultipartPOSTForm, binding.MIMEPOSTForm:
		if err := c.ShouldBind(&req); err != nil {
			return nil, fmt.Errorf("%w: %w", errMalformed, err)
		}
		if content := c.PostForm("reply_content"); content != "" || c.PostForm("reply_attachment_url") != "" {
			req.Reply = &Reply{Content: content, AttachmentURL: c.PostForm("reply_attachment_url")}
		}
		if fh, err := c.FormFile("file"); err == nil {
			req.attachment = fh
		} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("%w: %w", errMalformed, err)
		}
	default:
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		req.Blueprint = string(body)
	}
	return &req, nil
}

// Resolve returns the blueprint text of req, searching in order: the
// blueprint field, the command arguments (last match wins), the uploaded
// or linked attachment, the replied-to message and finally its attachment.
func (req *Request) Resolve(ctx context.Context, fetcher Fetcher) (string, error) {
	if text := strings.TrimSpace(req.Blueprint); text != "" {
		return text, nil
	}
	if text, ok := lastBlueprintToken(req.Args); ok {
		return text, nil
	}

	switch {
	case req.attachment != nil:
		return readAttachment(req.attachment)
	case req.AttachmentURL != "":
		return fetchAttachment(ctx, fetcher, req.AttachmentURL)
	}

	if req.Reply != nil {
		if text, ok := lastBlueprintToken([]string{req.Reply.Content}); ok {
			return text, nil
		}
		if req.Reply.AttachmentURL != "" {
			return fetchAttachment(ctx, fetcher, req.Reply.AttachmentURL)
		}
	}
	return "", errNoBlueprint
}

func lastBlueprintToken(args []string) (string, bool) {
	var found string
	for _, arg := range args {
		for _, tok := range strings.Fields(arg) {
			if blueprint.HasPrefix(tok) {
				found = tok
			}
		}
	}
	return found, found != ""
}

func readAttachment(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read attachment: %w", err)
	}
	return fetch.Text(data)
}

func fetchAttachment(ctx context.Context, fetcher Fetcher, url string) (string, error) {
	if fetcher == nil {
		return "", fetch.ErrInvalidURL
	}
	return fetcher.Fetch(ctx, url)
}
