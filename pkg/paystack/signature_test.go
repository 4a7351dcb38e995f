package paystack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignatureAccepts(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"EA_TRAIN_1_ABC123"}}`)
	sig := ComputeSignature("sk_test_secret", body)
	assert.True(t, VerifySignature("sk_test_secret", body, sig))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	sig := ComputeSignature("other_secret", body)
	assert.False(t, VerifySignature("sk_test_secret", body, sig))
}

func TestVerifySignatureMutatedBody(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"amount":2900}}`)
	sig := ComputeSignature("sk_test_secret", body)

	mutated := make([]byte, len(body))
	copy(mutated, body)
	mutated[len(mutated)-3] = '1'
	assert.False(t, VerifySignature("sk_test_secret", mutated, sig))
}

func TestVerifySignatureMissingInputs(t *testing.T) {
	body := []byte(`{}`)
	assert.False(t, VerifySignature("", body, ComputeSignature("", body)))
	assert.False(t, VerifySignature("secret", body, ""))
}
