package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	path  string
	form  map[string]string
	body  []byte
	token string
}

func newSlackServer(t *testing.T, response string) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{path: r.URL.Path, form: map[string]string{}, token: r.Header.Get("Authorization")}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var raw json.RawMessage
			_ = json.NewDecoder(r.Body).Decode(&raw)
			rec.body = raw
		} else {
			_ = r.ParseForm()
			for k := range r.PostForm {
				rec.form[k] = r.PostForm.Get(k)
			}
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestOpenView(t *testing.T) {
	srv, requests := newSlackServer(t, `{"ok":true,"view":{"id":"V1"}}`)
	client := NewWebClient("xoxb-test", srv.URL, srv.Client())

	view := slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      "answer_modal",
		PrivateMetadata: "q-123",
		Title:           slack.NewTextBlockObject(slack.PlainTextType, "t", false, false),
	}
	require.NoError(t, client.OpenView(context.Background(), "trigger-1", view))

	reqs := requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "/views.open", reqs[0].path)
	require.Equal(t, "Bearer xoxb-test", reqs[0].token)

	var body struct {
		TriggerID string `json:"trigger_id"`
		View      struct {
			CallbackID      string `json:"callback_id"`
			PrivateMetadata string `json:"private_metadata"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(reqs[0].body, &body))
	require.Equal(t, "trigger-1", body.TriggerID)
	require.Equal(t, "answer_modal", body.View.CallbackID)
	require.Equal(t, "q-123", body.View.PrivateMetadata)
}

func TestOpenViewExpiredTrigger(t *testing.T) {
	srv, _ := newSlackServer(t, `{"ok":false,"error":"expired_trigger_id"}`)
	client := NewWebClient("xoxb-test", srv.URL, srv.Client())

	err := client.OpenView(context.Background(), "stale", slack.ModalViewRequest{Type: slack.VTModal})
	require.Error(t, err)
	require.Contains(t, err.Error(), "expired_trigger_id")
}

func TestPostMessage(t *testing.T) {
	srv, requests := newSlackServer(t, `{"ok":true,"channel":"D1","ts":"1.0"}`)
	client := NewWebClient("xoxb-test", srv.URL, srv.Client())

	require.NoError(t, client.PostMessage(context.Background(), "U123", "saved"))

	reqs := requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "/chat.postMessage", reqs[0].path)
	require.Equal(t, "U123", reqs[0].form["channel"])
	require.Equal(t, "saved", reqs[0].form["text"])
}
