// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T, serverURL string) Mailer {
	t.Helper()

	m, err := NewSendGridMailer(config.Mailer{
		APIKey:         "SG.test-key",
		BaseURL:        serverURL,
		FromEmail:      "noreply@miniforum.test",
		FromName:       "Miniforum",
		RequestTimeout: 2 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return m
}

func TestSendNewPassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer SG.test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var msg sendGridMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "Password Recovery", msg.Subject)
		assert.Equal(t, "noreply@miniforum.test", msg.From.Email)
		assert.Equal(t, "Miniforum", msg.From.Name)
		require.Len(t, msg.Personalizations, 1)
		assert.Equal(t, "alice@example.com", msg.Personalizations[0].To[0].Email)
		require.Len(t, msg.Content, 1)
		assert.Equal(t, "Here is your new password: Xy7pQr2mNs4k", msg.Content[0].Value)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := newTestMailer(t, srv.URL)
	require.NoError(t, m.SendNewPassword(context.Background(), "alice@example.com", "Xy7pQr2mNs4k"))
}

func TestSendNewPassword_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrForbidden},
		{name: "too large", status: http.StatusRequestEntityTooLarge, wantErr: ErrPayloadTooLarge},
		{name: "teapot", status: http.StatusTeapot, wantErr: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"errors":[{"message":"nope"}]}`))
			}))
			defer srv.Close()

			err := newTestMailer(t, srv.URL).SendNewPassword(context.Background(), "alice@example.com", "pw")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSendNewPassword_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	require.NoError(t, newTestMailer(t, srv.URL).SendNewPassword(context.Background(), "alice@example.com", "pw"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSendNewPassword_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newTestMailer(t, url).SendNewPassword(context.Background(), "alice@example.com", "pw")
	assert.ErrorIs(t, err, ErrSendingMail)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("api.sendgrid.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.sendgrid.com", got)

	got, err = normalizeBaseURL(" http://127.0.0.1:9000 ")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", got)

	_, err = normalizeBaseURL("")
	assert.Error(t, err)

	_, err = NewSendGridMailer(config.Mailer{BaseURL: "   "}, logger.Nop())
	assert.Error(t, err)
}
