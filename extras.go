package redshiftlineage

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
)

const (
	extraKeyIAM               = "iam"
	extraKeyClusterIdentifier = "cluster_identifier"
	extraKeyRegion            = "region"
	extraKeyProfile           = "profile"
	extraKeyPort              = "port"
)

// Extras is the typed view of a connection's extra JSON blob.
// Absent or mistyped keys keep their zero value.
type Extras struct {
	IAM               bool
	ClusterIdentifier string
	Region            string
	Profile           string
	Port              int

	raw *orderedmap.OrderedMap
}

func ParseExtras(raw string) (*Extras, error) {
	om := orderedmap.New()
	if strings.TrimSpace(raw) != "" {
		if err := om.UnmarshalJSON([]byte(raw)); err != nil {
			return nil, fmt.Errorf("decode extra: %w", err)
		}
	}
	return newExtras(om), nil
}

func newExtras(om *orderedmap.OrderedMap) *Extras {
	e := &Extras{
		raw: om,
	}
	if v, ok := om.Get(extraKeyIAM); ok {
		b, isBool := v.(bool)
		e.IAM = isBool && b
	}
	e.ClusterIdentifier = e.getString(extraKeyClusterIdentifier)
	e.Region = e.getString(extraKeyRegion)
	e.Profile = e.getString(extraKeyProfile)
	if v, ok := om.Get(extraKeyPort); ok {
		port, err := toPort(v)
		if err != nil {
			debugLogger.Printf("ignore extra port: %v", err)
		} else {
			e.Port = port
		}
	}
	return e
}

func (e *Extras) getString(key string) string {
	v, ok := e.raw.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		debugLogger.Printf("ignore extra %s: unexpected type %T", key, v)
		return ""
	}
	return s
}

func toPort(v interface{}) (int, error) {
	switch port := v.(type) {
	case float64:
		if port != math.Trunc(port) || port <= 0 || port > math.MaxUint16 {
			return 0, fmt.Errorf("invalid port number: %v", port)
		}
		return int(port), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(port))
		if err != nil {
			return 0, fmt.Errorf("parse port: %w", err)
		}
		if n <= 0 || n > math.MaxUint16 {
			return 0, fmt.Errorf("invalid port number: %d", n)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected port type %T", v)
	}
}

// Get returns the raw decoded value of key.
func (e *Extras) Get(key string) (interface{}, bool) {
	if e.raw == nil {
		return nil, false
	}
	return e.raw.Get(key)
}

// Keys returns the extra keys in document order.
func (e *Extras) Keys() []string {
	if e.raw == nil {
		return []string{}
	}
	return e.raw.Keys()
}

func (e *Extras) String() string {
	if e.raw == nil {
		return "{}"
	}
	bs, err := json.Marshal(e.raw)
	if err != nil {
		return "{}"
	}
	return string(bs)
}
