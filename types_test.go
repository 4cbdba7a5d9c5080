package chipp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	chipp "github.com/davidbz/chipp-go"
)

func TestMessageConstructors(t *testing.T) {
	require.Equal(t, chipp.Message{Role: chipp.RoleUser, Content: "hi"}, chipp.UserMessage("hi"))
	require.Equal(t, chipp.Message{Role: chipp.RoleAssistant, Content: "hello"}, chipp.AssistantMessage("hello"))
	require.Equal(t, chipp.Message{Role: chipp.RoleSystem, Content: "be brief"}, chipp.SystemMessage("be brief"))
}

func TestSession_Lifecycle(t *testing.T) {
	session := chipp.NewSession()
	require.Empty(t, session.ID())

	resumed := chipp.NewSessionWithID("sess_42")
	require.Equal(t, "sess_42", resumed.ID())

	resumed.Reset()
	require.Empty(t, resumed.ID())
}
