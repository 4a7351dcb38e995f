package paystack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventChargeSuccess(t *testing.T) {
	body := []byte(`{
		"event": "charge.success",
		"data": {
			"id": 302961,
			"reference": "EA_TRAIN_1700000000000_AB12CD",
			"amount": 2900,
			"currency": "USD",
			"status": "success",
			"gateway_response": "Successful",
			"paid_at": "2026-08-30T10:15:00.000Z",
			"fees": 44,
			"authorization": {"authorization_code": "AUTH_xyz"},
			"customer": {"email": "jane@example.com"},
			"metadata": {"enrollment_id": "enr-1", "training_program": "CV Optimization", "customer_name": "Jane Doe"}
		}
	}`)

	event, err := ParseEvent(body)
	require.NoError(t, err)
	require.True(t, event.IsCharge())
	assert.Equal(t, EventChargeSuccess, event.Type)
	assert.Equal(t, "EA_TRAIN_1700000000000_AB12CD", event.Charge.Reference)
	assert.Equal(t, int64(2900), event.Charge.Amount)
	assert.Equal(t, "AUTH_xyz", event.Charge.Authorization.AuthorizationCode)
	assert.Equal(t, "CV Optimization", event.Charge.Metadata.TrainingProgram)
}

func TestParseEventUnrecognizedKeepsRaw(t *testing.T) {
	body := []byte(`{"event":"transfer.success","data":{"anything":"goes"}}`)
	event, err := ParseEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "transfer.success", event.Type)
	assert.False(t, event.IsCharge())
	assert.JSONEq(t, `{"anything":"goes"}`, string(event.Raw))
}

func TestParseEventMissingType(t *testing.T) {
	_, err := ParseEvent([]byte(`{"data":{}}`))
	assert.Error(t, err)
}

func TestParseEventChargeMissingReference(t *testing.T) {
	_, err := ParseEvent([]byte(`{"event":"charge.failed","data":{"amount":100}}`))
	assert.Error(t, err)
}

func TestParseEventMalformedBody(t *testing.T) {
	_, err := ParseEvent([]byte(`not json`))
	assert.Error(t, err)
}
