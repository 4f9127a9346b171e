package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const confirmationPath = "/functions/v1/send-booking-confirmation"

// Client клиент функции отправки писем-подтверждений
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиента; пустой baseURL отключает отправку
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет письмо о созданной записи на email
func (c *Client) SendBookingConfirmation(ctx context.Context, email string, appt *domain.Appointment) error {
	if c.baseURL == "" {
		return ErrDisabled
	}
	if email == "" || appt == nil {
		return fmt.Errorf("%w: email and appointment are required", ErrInvalidRequest)
	}

	payload := ConfirmationRequest{
		To: email,
		Appointment: AppointmentSummary{
			StartTime:   appt.StartTime.Format(time.RFC3339),
			ServiceName: appt.ServiceName,
			StaffName:   appt.StaffName,
			Price:       appt.Price,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %w", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+confirmationPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	c.log.Info("SendBookingConfirmation: sent appointment_id=%s", appt.ID)
	return nil
}
