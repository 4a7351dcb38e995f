package paystack

import (
	"encoding/json"
	"fmt"
)

// Webhook event types this service reacts to. Anything else is parsed
// as EventOther and carried raw.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
	EventChargePending = "charge.pending"
)

// Event is the parsed webhook envelope. For charge.* events Charge is
// populated; for unrecognized types only Type and Raw are set.
type Event struct {
	Type   string
	Charge *ChargeData
	Raw    json.RawMessage
}

// IsCharge reports whether the event carries charge data.
func (e *Event) IsCharge() bool {
	return e.Charge != nil
}

// ChargeData is the gateway's transaction snapshot, shared between the
// verify endpoint response and charge.* webhook payloads.
type ChargeData struct {
	ID              int64               `json:"id"`
	Reference       string              `json:"reference"`
	Amount          int64               `json:"amount"`
	Currency        string              `json:"currency"`
	Status          string              `json:"status"`
	GatewayResponse string              `json:"gateway_response"`
	PaidAt          string              `json:"paid_at"`
	Fees            int64               `json:"fees"`
	Authorization   Authorization       `json:"authorization"`
	Customer        Customer            `json:"customer"`
	Metadata        TransactionMetadata `json:"metadata"`
}

// Authorization carries the reusable card authorization issued by the
// gateway on a successful charge.
type Authorization struct {
	AuthorizationCode string `json:"authorization_code"`
}

// Customer identifies the paying customer.
type Customer struct {
	Email string `json:"email"`
}

// TransactionMetadata is the metadata blob this service attaches at
// initialization and reads back from webhook deliveries.
type TransactionMetadata struct {
	EnrollmentID    string `json:"enrollment_id,omitempty"`
	TrainingProgram string `json:"training_program,omitempty"`
	CustomerName    string `json:"customer_name,omitempty"`
}

type eventEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ParseEvent decodes a webhook body into a tagged Event. Callers must
// verify the signature over the raw bytes before calling this.
func ParseEvent(body []byte) (*Event, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse webhook envelope: %w", err)
	}
	if envelope.Event == "" {
		return nil, fmt.Errorf("webhook envelope missing event type")
	}

	event := &Event{Type: envelope.Event, Raw: envelope.Data}

	switch envelope.Event {
	case EventChargeSuccess, EventChargeFailed, EventChargePending:
		var charge ChargeData
		if err := json.Unmarshal(envelope.Data, &charge); err != nil {
			return nil, fmt.Errorf("parse %s data: %w", envelope.Event, err)
		}
		if charge.Reference == "" {
			return nil, fmt.Errorf("%s event missing reference", envelope.Event)
		}
		event.Charge = &charge
	}

	return event, nil
}
