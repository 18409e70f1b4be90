package redshiftlineage

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const connEnvPrefix = "AIRFLOW_CONN_"

// Hook gives access to the connection an operator runs against.
type Hook interface {
	GetConnection(ctx context.Context) (*Connection, error)
}

type HookConstructor func(ctx context.Context, connID string) (Hook, error)

// StaticHook returns a connection the caller already holds.
type StaticHook struct {
	Connection *Connection
}

func (h StaticHook) GetConnection(_ context.Context) (*Connection, error) {
	if h.Connection == nil {
		return nil, ErrConnectionNotFound
	}
	return h.Connection, nil
}

type envHook struct {
	connID string
}

func (h envHook) GetConnection(_ context.Context) (*Connection, error) {
	key := connEnvPrefix + strings.ToUpper(h.connID)
	uri, ok := os.LookupEnv(key)
	if !ok {
		return nil, fmt.Errorf("conn_id=%s: %w", h.connID, ErrConnectionNotFound)
	}
	conn, err := ParseConnectionURI(uri)
	if err != nil {
		return nil, fmt.Errorf("conn_id=%s: %w", h.connID, err)
	}
	conn.ConnID = h.connID
	return conn, nil
}

// DefaultHookConstructor resolves connections from AIRFLOW_CONN_<CONN_ID>
// environment variables holding connection URIs.
func DefaultHookConstructor(_ context.Context, connID string) (Hook, error) {
	if connID == "" {
		return nil, fmt.Errorf("conn_id is empty: %w", ErrConnectionNotFound)
	}
	return envHook{connID: connID}, nil
}
