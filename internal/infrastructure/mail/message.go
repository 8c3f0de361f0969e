package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"

	"donation_finder/pkg/lox"
)

// buildRawMessage assembles an RFC 2822 message (multipart/alternative body,
// optional attachments) and returns it base64url-encoded the way the Gmail
// API expects.
func buildRawMessage(from, to, subject, textBody, htmlBody string, attachments []string) (string, error) {
	var buf bytes.Buffer

	mixed := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mixed.Boundary())

	if err := writeAlternativeBody(mixed, textBody, htmlBody); err != nil {
		return "", err
	}

	parts, err := lox.MapErr(attachments, readAttachment)
	if err != nil {
		return "", err
	}

	for _, part := range parts {
		if err := writeAttachment(mixed, part); err != nil {
			return "", err
		}
	}

	if err := mixed.Close(); err != nil {
		return "", fmt.Errorf("multipart.Close: %w", err)
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

func writeAlternativeBody(mixed *multipart.Writer, textBody, htmlBody string) error {
	var altBuf bytes.Buffer

	alternative := multipart.NewWriter(&altBuf)

	textPart, err := alternative.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return fmt.Errorf("alternative.CreatePart text: %w", err)
	}
	textPart.Write([]byte(textBody)) //nolint:errcheck

	htmlPart, err := alternative.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return fmt.Errorf("alternative.CreatePart html: %w", err)
	}
	htmlPart.Write([]byte(htmlBody)) //nolint:errcheck

	if err := alternative.Close(); err != nil {
		return fmt.Errorf("alternative.Close: %w", err)
	}

	part, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"multipart/alternative; boundary=" + alternative.Boundary()},
	})
	if err != nil {
		return fmt.Errorf("mixed.CreatePart: %w", err)
	}

	if _, err := part.Write(altBuf.Bytes()); err != nil {
		return fmt.Errorf("part.Write: %w", err)
	}

	return nil
}

type attachment struct {
	filename string
	data     []byte
}

// readAttachment skips files that vanished between writing and sending.
func readAttachment(path string) (attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return attachment{}, nil
		}
		return attachment{}, fmt.Errorf("os.ReadFile %s: %w", path, err)
	}

	return attachment{filename: filepath.Base(path), data: data}, nil
}

func writeAttachment(mixed *multipart.Writer, att attachment) error {
	if att.filename == "" {
		return nil
	}

	part, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/octet-stream"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", att.filename)},
	})
	if err != nil {
		return fmt.Errorf("mixed.CreatePart: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(att.data)
	if _, err := part.Write([]byte(encoded)); err != nil {
		return fmt.Errorf("part.Write: %w", err)
	}

	return nil
}
