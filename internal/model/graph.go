package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NodeType discriminates the kinds of node in a relationship graph.
type NodeType string

const (
	NodeStakeholder NodeType = "stakeholder"
	NodeProblem     NodeType = "problem"
	NodeOutcome     NodeType = "outcome"
	NodeMetric      NodeType = "metric"
	NodeInterview   NodeType = "interview"
)

// String returns the string representation of the node type.
func (t NodeType) String() string {
	return string(t)
}

// IsValid checks whether the node type is a known value.
func (t NodeType) IsValid() bool {
	switch t {
	case NodeStakeholder, NodeProblem, NodeOutcome, NodeMetric, NodeInterview:
		return true
	}
	return false
}

// NodeKey identifies a graph node by the type and id of its source record.
// It serializes as "{type}-{id}", e.g. "problem-7".
type NodeKey struct {
	Type NodeType
	ID   int64
}

// String formats the key as "{type}-{id}".
func (k NodeKey) String() string {
	return string(k.Type) + "-" + strconv.FormatInt(k.ID, 10)
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKey) UnmarshalText(text []byte) error {
	s := string(text)
	i := strings.LastIndexByte(s, '-')
	if i <= 0 {
		return fmt.Errorf("invalid node key %q", s)
	}
	t := NodeType(s[:i])
	if !t.IsValid() {
		return fmt.Errorf("invalid node key %q: unknown type %q", s, t)
	}
	id, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid node key %q: %w", s, err)
	}
	*k = NodeKey{Type: t, ID: id}
	return nil
}

// NodeData is the type-specific payload of a graph node. Exactly one
// variant exists per NodeType; the set is closed.
type NodeData interface {
	Key() NodeKey
	isNodeData()
}

// StakeholderData is the payload of a stakeholder node.
type StakeholderData struct {
	ID           int64           `json:"id"`
	Type         StakeholderType `json:"type"`
	Email        string          `json:"email"`
	Organization string          `json:"organization"`
	Tags         []string        `json:"tags"`
}

// ProblemData is the payload of a problem node.
type ProblemData struct {
	ID          int64    `json:"id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Tags        []string `json:"tags"`
}

// OutcomeData is the payload of an outcome node. Metrics are emitted as
// their own nodes, so only the count is carried here.
type OutcomeData struct {
	ID           int64    `json:"id"`
	Description  string   `json:"description"`
	Priority     Priority `json:"priority"`
	MetricsCount int      `json:"metricsCount"`
	Tags         []string `json:"tags"`
}

// MetricData is the payload of a success metric node.
type MetricData struct {
	ID           int64  `json:"id"`
	Description  string `json:"description"`
	TargetValue  string `json:"targetValue"`
	CurrentValue string `json:"currentValue"`
	Unit         string `json:"unit"`
}

// InterviewData is the payload of an interview node.
type InterviewData struct {
	ID          int64         `json:"id"`
	Type        InterviewType `json:"type"`
	Date        time.Time     `json:"date"`
	Interviewer string        `json:"interviewer"`
}

func (d *StakeholderData) Key() NodeKey { return NodeKey{Type: NodeStakeholder, ID: d.ID} }
func (d *ProblemData) Key() NodeKey     { return NodeKey{Type: NodeProblem, ID: d.ID} }
func (d *OutcomeData) Key() NodeKey     { return NodeKey{Type: NodeOutcome, ID: d.ID} }
func (d *MetricData) Key() NodeKey      { return NodeKey{Type: NodeMetric, ID: d.ID} }
func (d *InterviewData) Key() NodeKey   { return NodeKey{Type: NodeInterview, ID: d.ID} }

func (*StakeholderData) isNodeData() {}
func (*ProblemData) isNodeData()     {}
func (*OutcomeData) isNodeData()     {}
func (*MetricData) isNodeData()      {}
func (*InterviewData) isNodeData()   {}

// newNodeData returns an empty payload for the given node type.
func newNodeData(t NodeType) (NodeData, error) {
	switch t {
	case NodeStakeholder:
		return &StakeholderData{}, nil
	case NodeProblem:
		return &ProblemData{}, nil
	case NodeOutcome:
		return &OutcomeData{}, nil
	case NodeMetric:
		return &MetricData{}, nil
	case NodeInterview:
		return &InterviewData{}, nil
	}
	return nil, fmt.Errorf("unknown node type %q", t)
}

// GraphNode is a single node of a relationship graph.
type GraphNode struct {
	ID    NodeKey  `json:"id"`
	Label string   `json:"label"`
	Type  NodeType `json:"type"`
	Data  NodeData `json:"data"`
}

// NewGraphNode returns a node whose id and type are derived from data.
func NewGraphNode(label string, data NodeData) *GraphNode {
	key := data.Key()
	return &GraphNode{ID: key, Label: label, Type: key.Type, Data: data}
}

// UnmarshalJSON decodes a node, selecting the payload variant by type.
func (n *GraphNode) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID    NodeKey         `json:"id"`
		Label string          `json:"label"`
		Type  NodeType        `json:"type"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	data, err := newNodeData(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return fmt.Errorf("node %s data: %w", raw.ID, err)
		}
	}
	*n = GraphNode{ID: raw.ID, Label: raw.Label, Type: raw.Type, Data: data}
	return nil
}

// EdgeLabel names the relationship an edge represents.
type EdgeLabel string

const (
	EdgeHasProblem     EdgeLabel = "has problem"
	EdgeLeadsTo        EdgeLabel = "leads to"
	EdgeMeasuredBy     EdgeLabel = "measured by"
	EdgeParticipatedIn EdgeLabel = "participated in"
)

// GraphEdge is a directed relationship between two graph nodes.
type GraphEdge struct {
	ID     string    `json:"id"`
	Source NodeKey   `json:"source"`
	Target NodeKey   `json:"target"`
	Label  EdgeLabel `json:"label"`
}

// EdgeID returns the id of the edge from source to target,
// formatted as "{typeA}-{idA}-{typeB}-{idB}".
func EdgeID(source, target NodeKey) string {
	return source.String() + "-" + target.String()
}

// NewGraphEdge returns an edge whose id is derived from its endpoints.
func NewGraphEdge(source, target NodeKey, label EdgeLabel) *GraphEdge {
	return &GraphEdge{
		ID:     EdgeID(source, target),
		Source: source,
		Target: target,
		Label:  label,
	}
}

// GraphStats holds the number of records of each primary aggregate fetched
// for the graph. Success metrics are not counted.
type GraphStats struct {
	StakeholderCount int `json:"stakeholderCount"`
	ProblemCount     int `json:"problemCount"`
	OutcomeCount     int `json:"outcomeCount"`
	InterviewCount   int `json:"interviewCount"`
}

// GraphData is the response of the project graph endpoint.
type GraphData struct {
	Nodes []*GraphNode `json:"nodes"`
	Edges []*GraphEdge `json:"edges"`
	Stats *GraphStats  `json:"stats"`
}
