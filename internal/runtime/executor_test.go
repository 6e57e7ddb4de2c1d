package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestron-dev/orchestron/internal/runtime"
	"github.com/orchestron-dev/orchestron/internal/testutils"
	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/ports"
	"github.com/orchestron-dev/orchestron/pkg/registry"
)

func newExecutor(t *testing.T, nodes ...ports.Node) (*runtime.Executor, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	for _, n := range nodes {
		require.NoError(t, reg.Register(n))
	}
	reg.Freeze()
	return runtime.NewExecutor(reg, ports.StaticConfig{}), reg
}

func TestExecutor_Success(t *testing.T) {
	stub := testutils.NewStub("emailgetter",
		[]domain.ParameterSpec{{Name: "max_emails", Type: domain.TypeInt, Default: 5}},
		[]string{"emails", "count"})
	stub.Result = domain.Success(map[string]any{"emails": []any{"a"}, "count": 1})

	exec, _ := newExecutor(t, stub)
	result := exec.Run(context.Background(), "emailgetter", map[string]any{"max_emails": 1})

	require.True(t, result.OK)
	assert.Equal(t, 1, result.Payload["count"])
	assert.Equal(t, 1, stub.Calls())
	assert.Equal(t, 1, stub.LastParams.Int("max_emails", 0))
}

func TestExecutor_ValidationStopsBeforeExecution(t *testing.T) {
	stub := testutils.NewStub("dbwriter",
		[]domain.ParameterSpec{{Name: "emails", Type: domain.TypeList, Required: true}},
		[]string{"count"})

	exec, _ := newExecutor(t, stub)
	result := exec.Run(context.Background(), "dbwriter", map[string]any{})

	require.False(t, result.OK)
	assert.Equal(t, domain.KindValidation, result.Failure.Kind)
	assert.Contains(t, result.Failure.Message, "emails")
	assert.Equal(t, "dbwriter", result.Failure.Node)
	assert.Zero(t, stub.Calls(), "node must not run on invalid input")
}

func TestExecutor_UnknownNode(t *testing.T) {
	exec, _ := newExecutor(t)
	result := exec.Run(context.Background(), "nope", nil)

	require.False(t, result.OK)
	assert.Equal(t, domain.KindNotFound, result.Failure.Kind)
}

func TestExecutor_UnexpectedErrorBecomesInternal(t *testing.T) {
	stub := testutils.NewStub("flaky", nil, nil)
	stub.Err = errors.New("disk exploded")

	exec, _ := newExecutor(t, stub)
	result := exec.Run(context.Background(), "flaky", nil)

	require.False(t, result.OK)
	assert.Equal(t, domain.KindInternal, result.Failure.Kind)
	assert.Contains(t, result.Failure.Message, "disk exploded")
}

func TestExecutor_PanicRecovered(t *testing.T) {
	stub := testutils.NewStub("bomber", nil, nil)
	stub.Panic = "boom"

	exec, _ := newExecutor(t, stub)
	result := exec.Run(context.Background(), "bomber", nil)

	require.False(t, result.OK)
	assert.Equal(t, domain.KindInternal, result.Failure.Kind)
	assert.Contains(t, result.Failure.Message, "boom")
}

func TestExecutor_DomainFailurePassesThrough(t *testing.T) {
	stub := testutils.NewStub("emailsender", nil, nil)
	stub.Result = domain.Fail(domain.KindAuth, "bad credentials")

	exec, _ := newExecutor(t, stub)
	result := exec.Run(context.Background(), "emailsender", nil)

	require.False(t, result.OK)
	assert.Equal(t, domain.KindAuth, result.Failure.Kind)
	assert.Equal(t, "emailsender", result.Failure.Node)
}

func TestExecutor_ConfigReachesNode(t *testing.T) {
	stub := testutils.NewStub("emailsender", nil, nil)
	reg := registry.New()
	require.NoError(t, reg.Register(stub))
	exec := runtime.NewExecutor(reg, ports.StaticConfig{
		"emailsender": {"smtp_server": "mail.example.com"},
	})

	_ = exec.Run(context.Background(), "emailsender", nil)
	assert.Equal(t, "mail.example.com", stub.LastConfig.String("smtp_server"))
}
