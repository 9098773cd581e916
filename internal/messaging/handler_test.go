package messaging_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/messaging"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

func TestHandler_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"sent", nil, http.StatusCreated},
		{"blank", messaging.ErrEmptyBody, http.StatusUnprocessableEntity},
		{"not visible", application.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := messaging.NewHandler(&messaging.StubService{
				SendFunc: func(_ context.Context, actor identity.Principal, id, body string) (*messaging.Message, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &messaging.Message{ID: "m1", ApplicationID: id, SenderID: &actor.UserID, SenderRole: actor.Role, Body: body}, nil
				},
			})

			ctx := identity.ContextWith(context.Background(), recruiter)
			ctx = web.NewContextWithParams(ctx, messaging.SendRequest{Body: "hello"})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/applications/"+appID+"/messages", http.NoBody)
			req.SetPathValue("id", appID)
			rec := httptest.NewRecorder()
			h.Send(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

func TestHandler_MarkRead(t *testing.T) {
	t.Parallel()

	h := messaging.NewHandler(&messaging.StubService{
		MarkReadFunc: func(context.Context, identity.Principal, string) (int64, error) {
			return 2, nil
		},
	})

	ctx := identity.ContextWith(context.Background(), owner)
	req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/applications/"+appID+"/messages/read", http.NoBody)
	req.SetPathValue("id", appID)
	rec := httptest.NewRecorder()
	h.MarkRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}

	var res web.OKResponse[messaging.ReadResponse]
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Data.Marked != 2 {
		t.Errorf("res.Data.Marked = %d, want: 2", res.Data.Marked)
	}
}
