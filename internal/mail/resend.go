// Package mail delivers rendered report artifacts over the Resend
// HTTP API.
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const resendEndpoint = "https://api.resend.com/emails"

var ErrDeliveryFailed = errors.New("email delivery failed")

// Client is constructed once at startup and shared; a missing API key
// fails construction rather than the first send.
type Client struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(apiKey, from string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	if from == "" {
		return nil, errors.New("sender address is required")
	}

	return &Client{
		apiKey:     apiKey,
		from:       from,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}, nil
}

// SendReportEmail dispatches a spreadsheet report as an attachment.
// reportName is the display name, e.g. "CUSTOMER LEDGER".
func (c *Client) SendReportEmail(ctx context.Context, to, reportName string, attachment []byte, filename string) error {
	subject := fmt.Sprintf("%s Report - %s", reportName, time.Now().Format("01/02/2006"))
	html := fmt.Sprintf(`<p>Dear User,</p>
<p>Attached is your <strong>%s</strong> report.</p>
<p>Best regards,<br>Stockbook Reports</p>`, reportName)

	payload := map[string]interface{}{
		"from":    c.from,
		"to":      to,
		"subject": subject,
		"html":    html,
		"attachments": []map[string]string{
			{
				"filename": filename,
				"content":  base64.StdEncoding.EncodeToString(attachment),
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %s", ErrDeliveryFailed, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("Resend API error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("%w: resend api status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	c.logger.Info("Report email sent",
		zap.String("to", to),
		zap.String("filename", filename))

	return nil
}
