package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"ArticleSummarizer/internal/domain"
)

func TestNotifierPublish(t *testing.T) {
	t.Parallel()

	var (
		gotPath string
		gotChat string
		gotText string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewNotifier("123:abc", "-10042")
	n.apiBase = server.URL
	n.client = server.Client()

	summary := domain.SavedSummary{Summary: domain.Summary{Text: "Short summary.", URL: "https://example.org/a"}}
	if err := n.Publish(context.Background(), summary); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotChat != "-10042" {
		t.Fatalf("unexpected chat id: %s", gotChat)
	}
	if gotText != "Short summary.\n\nhttps://example.org/a" {
		t.Fatalf("unexpected text: %q", gotText)
	}
}

func TestNotifierPublishErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := NewNotifier("token", "chat")
	n.apiBase = server.URL
	if err := n.Publish(context.Background(), domain.SavedSummary{}); err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}

	if err := NewNotifier("", "chat").Publish(context.Background(), domain.SavedSummary{}); err == nil {
		t.Fatalf("expected misconfiguration error")
	}
}

func TestBuildMessageTruncatesLongSummaries(t *testing.T) {
	t.Parallel()

	summary := domain.SavedSummary{Summary: domain.Summary{
		Text: strings.Repeat("é", 5000),
		URL:  "https://example.org/long",
	}}

	msg := buildMessage(summary)
	if n := utf8.RuneCountInString(msg); n != maxMessageRunes {
		t.Fatalf("expected %d runes, got %d", maxMessageRunes, n)
	}
	if !strings.HasSuffix(msg, "…\n\nhttps://example.org/long") {
		t.Fatalf("expected ellipsis and url at the end, got tail %q", msg[len(msg)-40:])
	}
}

func TestBuildMessageLongURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		urlLen int
	}{
		{name: "no room for summary", urlLen: maxMessageRunes - 2},
		{name: "one rune of room", urlLen: maxMessageRunes - 3},
		{name: "url alone exceeds limit", urlLen: maxMessageRunes + 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			longURL := "https://example.org/" + strings.Repeat("a", tt.urlLen-len("https://example.org/"))
			msg := buildMessage(domain.SavedSummary{Summary: domain.Summary{Text: "Summary.", URL: longURL}})

			if n := utf8.RuneCountInString(msg); n > maxMessageRunes {
				t.Fatalf("message has %d runes, limit is %d", n, maxMessageRunes)
			}
			if !strings.HasPrefix(msg, "https://example.org/") {
				t.Fatalf("expected the url to lead the message, got prefix %q", msg[:30])
			}
		})
	}
}

func TestNotifierPublishLongURL(t *testing.T) {
	t.Parallel()

	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotText = r.PostForm.Get("text")
	}))
	defer server.Close()

	n := NewNotifier("token", "chat")
	n.apiBase = server.URL

	longURL := "https://example.org/" + strings.Repeat("p", 4100)
	summary := domain.SavedSummary{Summary: domain.Summary{Text: "Summary.", URL: longURL}}
	if err := n.Publish(context.Background(), summary); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if got := utf8.RuneCountInString(gotText); got != maxMessageRunes {
		t.Fatalf("expected %d runes sent, got %d", maxMessageRunes, got)
	}
}
