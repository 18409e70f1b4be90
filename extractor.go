package redshiftlineage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	RedshiftSQLOperatorClassname = "RedshiftSQLOperator"

	Scheme        = "redshift"
	DefaultPort   = 5439
	DefaultSchema = "public"

	awsDomain               = "amazonaws.com"
	clusterHostnameLabelNum = 6
)

// Operator is the orchestrator task whose lineage is extracted.
type Operator struct {
	TaskID         string
	Classname      string
	RedshiftConnID string
	SQL            string
}

// Source identifies the physical resource an operator reads from or writes to.
type Source struct {
	Scheme        string
	Authority     string
	ConnectionURL string
}

func (s *Source) Name() string {
	return s.Scheme + "://" + s.Authority
}

type Extractor interface {
	OperatorClassnames() []string
	Extract(ctx context.Context) (*Source, error)
}

type ExtractorOptions struct {
	RegionResolver  RegionResolver
	HookConstructor HookConstructor
}

func WithRegionResolver(r RegionResolver) func(*ExtractorOptions) {
	return func(o *ExtractorOptions) {
		o.RegionResolver = r
	}
}

func WithHookConstructor(c HookConstructor) func(*ExtractorOptions) {
	return func(o *ExtractorOptions) {
		o.HookConstructor = c
	}
}

type RedshiftSQLExtractor struct {
	operator *Operator
	opts     ExtractorOptions
}

func NewRedshiftSQLExtractor(op *Operator, optFns ...func(*ExtractorOptions)) *RedshiftSQLExtractor {
	opts := ExtractorOptions{}
	for _, optFn := range optFns {
		optFn(&opts)
	}
	if opts.RegionResolver == nil {
		opts.RegionResolver = NewSharedConfigRegionResolver()
	}
	if opts.HookConstructor == nil {
		opts.HookConstructor = DefaultHookConstructor
	}
	return &RedshiftSQLExtractor{
		operator: op,
		opts:     opts,
	}
}

func RedshiftSQLOperatorClassnames() []string {
	return []string{RedshiftSQLOperatorClassname}
}

func (e *RedshiftSQLExtractor) OperatorClassnames() []string {
	return RedshiftSQLOperatorClassnames()
}

func (e *RedshiftSQLExtractor) Scheme() string {
	return Scheme
}

func (e *RedshiftSQLExtractor) DefaultSchema() string {
	return DefaultSchema
}

func (e *RedshiftSQLExtractor) Extract(ctx context.Context) (*Source, error) {
	if e.operator == nil {
		return nil, errors.New("operator is nil")
	}
	hook, err := e.opts.HookConstructor(ctx, e.operator.RedshiftConnID)
	if err != nil {
		return nil, fmt.Errorf("get hook: %w", err)
	}
	conn, err := hook.GetConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	authority, err := e.Authority(ctx, conn)
	if err != nil {
		return nil, err
	}
	debugLogger.Printf("task_id=%s authority=%s", e.operator.TaskID, authority)
	return &Source{
		Scheme:        e.Scheme(),
		Authority:     authority,
		ConnectionURL: conn.RedactedString(),
	}, nil
}

// Authority returns "identifier:port" for conn. With the iam extra set the
// hostname is ignored and the cluster is addressed by identifier and region.
func (e *RedshiftSQLExtractor) Authority(ctx context.Context, conn *Connection) (string, error) {
	if conn == nil {
		return "", errors.New("connection is nil")
	}
	extras := conn.ExtraDejson()
	var (
		identifier string
		port       int
	)
	switch {
	case extras.IAM:
		region := extras.Region
		if region == "" {
			var err error
			region, err = e.opts.RegionResolver.ResolveDefaultRegion(ctx, extras.Profile)
			if err != nil {
				return "", fmt.Errorf("resolve default region: %w", err)
			}
		}
		port = extras.Port
		if port == 0 {
			port = DefaultPort
		}
		identifier = extras.ClusterIdentifier + "." + region
	case conn.Host == "":
		return "", &ConfigurationError{
			ConnID: conn.ConnID,
			Err:    ErrMissingHost,
		}
	default:
		port = conn.Port
		if port == 0 {
			port = DefaultPort
		}
		identifier = ParseClusterIdentifier(conn.Host)
	}
	return identifier + ":" + strconv.Itoa(port), nil
}

// ParseClusterIdentifier extracts "cluster.region" from an endpoint such as
// cluster_identifier.id.region_name.redshift.amazonaws.com. Any other hostname
// is returned unchanged.
func ParseClusterIdentifier(hostname string) string {
	parts := strings.Split(hostname, ".")
	if strings.Contains(hostname, awsDomain) && len(parts) == clusterHostnameLabelNum {
		return parts[0] + "." + parts[2]
	}
	warnLogger.Printf(
		"could not parse identifier from hostname %q, you are probably using IP to connect to Redshift cluster; "+
			"expected format: 'cluster_identifier.id.region_name.redshift.amazonaws.com'; falling back to whole hostname",
		hostname,
	)
	return hostname
}
