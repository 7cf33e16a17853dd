package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/delaneyj/treeparty/cmd/treediff/templates"
	"github.com/delaneyj/treeparty/memhost"
	"github.com/delaneyj/treeparty/reactivity"
	"github.com/delaneyj/treeparty/renderer"
	"github.com/delaneyj/treeparty/scheduler"
	"gopkg.in/yaml.v3"
)

// Scenario is a sequence of trees rendered one after another into the
// same container.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

type Step struct {
	Name string   `yaml:"name"`
	Tree NodeSpec `yaml:"tree"`
}

// NodeSpec describes one node. An empty Tag with Text set is a text node,
// the tag "fragment" is a fragment. Items is shorthand for keyed li
// children whose key and text are the item.
type NodeSpec struct {
	Tag      string            `yaml:"tag,omitempty"`
	Key      string            `yaml:"key,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Props    map[string]string `yaml:"props,omitempty"`
	Items    []string          `yaml:"items,omitempty"`
	Children []NodeSpec        `yaml:"children,omitempty"`
}

func loadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return parseScenario(b)
}

func parseScenario(b []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", s.Name)
	}
	return s, nil
}

// keyedScenario builds a two step scenario from comma separated key lists.
func keyedScenario(from, to string) *Scenario {
	split := func(list string) []string {
		var out []string
		for _, key := range strings.Split(list, ",") {
			if key = strings.TrimSpace(key); key != "" {
				out = append(out, key)
			}
		}
		return out
	}
	return &Scenario{
		Name: "keyed list",
		Steps: []Step{
			{Name: "from", Tree: NodeSpec{Tag: "ul", Items: split(from)}},
			{Name: "to", Tree: NodeSpec{Tag: "ul", Items: split(to)}},
		},
	}
}

func (n NodeSpec) vnode() *renderer.VNode {
	var props renderer.Props
	if len(n.Props) > 0 || n.Key != "" {
		props = renderer.Props{}
		for k, v := range n.Props {
			props[k] = v
		}
		if n.Key != "" {
			props["key"] = n.Key
		}
	}

	if n.Tag == "" {
		return renderer.TextVNode(n.Text)
	}

	var children any
	switch {
	case len(n.Items) > 0 || len(n.Children) > 0:
		nodes := make([]*renderer.VNode, 0, len(n.Items)+len(n.Children))
		for _, item := range n.Items {
			nodes = append(nodes, renderer.H("li", renderer.Props{"key": item}, item))
		}
		for _, child := range n.Children {
			nodes = append(nodes, child.vnode())
		}
		children = nodes
	case n.Text != "":
		children = n.Text
	}

	if n.Tag == "fragment" {
		return renderer.H(renderer.Fragment, props, children)
	}
	return renderer.H(n.Tag, props, children)
}

// replay renders every step and records what the host saw.
func replay(s *Scenario, showTree bool) (*templates.Report, error) {
	host := memhost.New()
	root := host.NewContainer()
	r := renderer.New(host,
		reactivity.CreateReactiveSystem(nil),
		scheduler.New(scheduler.NewLoop()),
	)

	report := &templates.Report{Scenario: s.Name, ShowTree: showTree}
	for i, step := range s.Steps {
		host.Reset()
		if err := r.Render(step.Tree.vnode(), root); err != nil {
			return nil, fmt.Errorf("step %d %q: %w", i+1, step.Name, err)
		}

		counts := host.Counts()
		summary := make([]templates.Count, 0, len(counts))
		for _, kind := range slices.Sorted(maps.Keys(counts)) {
			summary = append(summary, templates.Count{Kind: string(kind), N: counts[kind]})
		}

		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		report.Steps = append(report.Steps, templates.Step{
			Name:   name,
			Ops:    host.Log(),
			Counts: summary,
			Hash:   root.Hash(),
			Tree:   root.Dump(),
		})
	}
	return report, nil
}
