package chipp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/davidbz/chipp-go/internal/observability"
)

// ChatStream performs one streaming exchange and returns the fragments as a
// pull-based stream. Streaming calls are never retried: a non-2xx opening
// response fails immediately and mid-stream failures surface from Recv.
//
// The session's continuity token is updated as soon as the stream observes
// it, which may be before the first text fragment arrives.
func (c *Client) ChatStream(ctx context.Context, session *Session, messages []Message) (*Stream, error) {
	correlationID := observability.GenerateCorrelationID()

	logger := observability.FromContext(ctx).With(
		zap.String("model", c.config.Model),
		zap.String("correlation_id", correlationID),
	)
	logger.Debug("sending streaming chat request")

	body := chatCompletionRequest{
		Model:         c.config.Model,
		Messages:      messages,
		Stream:        true,
		ChatSessionID: session.ID(),
	}

	resp, err := c.send(ctx, body, correlationID)
	if err != nil {
		return nil, err
	}

	return &Stream{
		body:    resp.Body,
		reader:  bufio.NewReader(resp.Body),
		session: session,
	}, nil
}

// Stream is a finite, single-pass sequence of text fragments decoded from
// the Chipp streaming wire format.
//
// The body is a sequence of newline-delimited records, each a short prefix,
// a colon, then a payload:
//
//	0:"sess_abc123"          continuity token, emitted once near stream start
//	0:{"delta":"Hello "}     incremental text
//	e:[DONE]                 end of stream
//
// Unrecognized prefixes (d:, f:, 8:, ...) are skipped. The format is not
// valid SSE despite the response headers suggesting it.
type Stream struct {
	body    io.ReadCloser
	reader  *bufio.Reader
	session *Session
	done    bool
}

// streamEvent classifies one decoded record.
type streamEvent int

const (
	eventSkip streamEvent = iota
	eventFragment
	eventDone
)

// streamRecord is the object form of a 0: payload.
type streamRecord struct {
	Delta         string `json:"delta"`
	ChatSessionID string `json:"chatSessionId"`
}

// Recv returns the next text fragment. It returns io.EOF once the stream
// terminates cleanly (an e: record or the body ending), a *StreamError for
// a malformed record, or a *TransportError if the connection drops
// mid-stream. After any terminal return the stream is finished and every
// further call returns io.EOF.
func (s *Stream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for {
		// Only complete lines are parsed; ReadString buffers partial
		// lines across transport chunks. The final line may arrive
		// without a trailing newline.
		line, readErr := s.reader.ReadString('\n')

		if line != "" && (readErr == nil || errors.Is(readErr, io.EOF)) {
			fragment, event, err := s.processLine(line)
			if err != nil {
				s.finish()
				return "", err
			}
			switch event {
			case eventFragment:
				return fragment, nil
			case eventDone:
				s.finish()
				return "", io.EOF
			case eventSkip:
			}
		}

		if readErr != nil {
			s.finish()
			if errors.Is(readErr, io.EOF) {
				return "", io.EOF
			}
			return "", &TransportError{Err: readErr}
		}
	}
}

// processLine decodes a single record, updating the session token when one
// is observed.
func (s *Stream) processLine(line string) (string, streamEvent, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", eventSkip, nil
	}

	prefix, payload, found := strings.Cut(line, ":")
	if !found {
		return "", eventSkip, nil
	}

	switch prefix {
	case "0":
		return s.processDataPayload(strings.TrimSpace(payload))
	case "e":
		// Terminates successfully whatever the payload: [DONE] or a
		// JSON object with final metadata.
		return "", eventDone, nil
	default:
		return "", eventSkip, nil
	}
}

func (s *Stream) processDataPayload(payload string) (string, streamEvent, error) {
	// A bare JSON string is the continuity-token-only record.
	if strings.HasPrefix(payload, `"`) {
		var token string
		if err := json.Unmarshal([]byte(payload), &token); err != nil {
			return "", eventSkip, &StreamError{Reason: "malformed token record", Err: err}
		}
		if token != "" {
			s.session.chatSessionID = token
		}
		return "", eventSkip, nil
	}

	var record streamRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return "", eventSkip, &StreamError{Reason: "malformed data record", Err: err}
	}

	if record.ChatSessionID != "" {
		s.session.chatSessionID = record.ChatSessionID
	}
	if record.Delta == "" {
		return "", eventSkip, nil
	}

	return record.Delta, eventFragment, nil
}

func (s *Stream) finish() {
	if !s.done {
		s.done = true
		_ = s.body.Close()
	}
}

// Close releases the underlying connection. Safe to call at any point and
// more than once; abandoning a stream without Close leaks the connection.
func (s *Stream) Close() error {
	s.finish()
	return nil
}

// Text drains the stream and returns the concatenated fragments. The
// stream is closed when Text returns.
func (s *Stream) Text() (string, error) {
	defer s.Close()

	var b strings.Builder
	for {
		fragment, err := s.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			return "", err
		}
		b.WriteString(fragment)
	}
}
