package webhook

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func signedHeaders(t *testing.T, v *Verifier, id string, at time.Time, payload []byte) http.Header {
	t.Helper()
	ts := strconv.FormatInt(at.Unix(), 10)
	h := http.Header{}
	h.Set(HeaderID, id)
	h.Set(HeaderTimestamp, ts)
	h.Set(HeaderSignature, v.Sign(id, ts, payload))
	return h
}

func TestNewVerifierRejectsBadSecret(t *testing.T) {
	_, err := NewVerifier("whsec_not!base64!!")
	require.Error(t, err)

	// The prefix is optional.
	v, err := NewVerifier(base64.StdEncoding.EncodeToString([]byte("key")))
	require.NoError(t, err)
	require.NotNil(t, v)
}

func TestVerifyRoundTrip(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	payload := []byte(`{"type":"user.created"}`)
	h := signedHeaders(t, v, "msg_1", time.Now(), payload)
	require.NoError(t, v.Verify(h, payload))
}

func TestVerifyMissingHeaders(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	payload := []byte(`{}`)
	full := signedHeaders(t, v, "msg_1", time.Now(), payload)

	for _, name := range []string{HeaderID, HeaderTimestamp, HeaderSignature} {
		h := http.Header{}
		for k, vals := range full {
			h[k] = vals
		}
		h.Del(name)
		require.ErrorIs(t, v.Verify(h, payload), ErrMissingHeaders, name)
	}

	h := signedHeaders(t, v, "msg_1", time.Now(), payload)
	h.Set(HeaderTimestamp, "not-a-number")
	require.ErrorIs(t, v.Verify(h, payload), ErrMissingHeaders)
}

func TestVerifyStaleTimestamp(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return base }

	payload := []byte(`{}`)

	h := signedHeaders(t, v, "msg_1", base.Add(-6*time.Minute), payload)
	require.ErrorIs(t, v.Verify(h, payload), ErrStaleTimestamp)

	h = signedHeaders(t, v, "msg_1", base.Add(6*time.Minute), payload)
	require.ErrorIs(t, v.Verify(h, payload), ErrStaleTimestamp)

	h = signedHeaders(t, v, "msg_1", base.Add(-4*time.Minute), payload)
	require.NoError(t, v.Verify(h, payload))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	payload := []byte(`{"type":"user.created"}`)
	h := signedHeaders(t, v, "msg_1", time.Now(), payload)
	require.ErrorIs(t, v.Verify(h, []byte(`{"type":"user.deleted"}`)), ErrInvalidSignature)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)
	other, err := NewVerifier("whsec_" + base64.StdEncoding.EncodeToString([]byte("another key")))
	require.NoError(t, err)

	payload := []byte(`{}`)
	h := signedHeaders(t, other, "msg_1", time.Now(), payload)
	require.ErrorIs(t, v.Verify(h, payload), ErrInvalidSignature)
}

func TestVerifyAcceptsAnyListedV1Signature(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	payload := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	good := v.Sign("msg_1", ts, payload)

	h := http.Header{}
	h.Set(HeaderID, "msg_1")
	h.Set(HeaderTimestamp, ts)
	h.Set(HeaderSignature, "v1,AAAA v2,BBBB "+good)
	require.NoError(t, v.Verify(h, payload))
}
