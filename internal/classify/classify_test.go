package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		nodeType string
		want     Category
	}{
		{"database keyword", "Postgres DB", "", Database},
		{"pipeline beats database", "CI/CD DB", "", Pipeline},
		{"auth beats gateway", "Auth Gateway", "", Service},
		{"gateway keyword", "API Gateway", "", Gateway},
		{"cdn keyword", "CDN", "", Gateway},
		{"web keyword", "Web Client", "", Client},
		{"mobile keyword", "Mobile Shell", "", Client},
		{"app substring", "Prod Approval", "", Client},
		{"test keyword", "Lint & Test", "", Pipeline},
		{"deploy keyword", "Dev Deploy", "", Pipeline},
		{"table keyword", "Orders Table", "", Database},
		{"storage keyword", "Blob Storage", "", Database},
		{"ai substring", "Email Nurture", "", Service},
		{"no match", "Load Balancer", "", Service},
		{"empty input", "", "", Service},
		{"explicit type wins", "Web Client", "database", Database},
		{"explicit edge type", "Cloudflare", "edge", Edge},
		{"type is case insensitive", "Anything", " Gateway ", Gateway},
		{"unknown type falls back to label", "Event Bus", "infrastructure", Service},
		{"external type falls back to label", "Vector DB", "external", Database},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.label, tt.nodeType))
		})
	}
}

func TestClassify_AlwaysInFixedSet(t *testing.T) {
	inputs := []string{"", "x", "GIT", "ci/cd", "Mobile App", "WAF", "random words here", "ÜBER db"}
	for _, label := range inputs {
		for _, typ := range []string{"", "client", "nonsense"} {
			got := Classify(label, typ)
			_, ok := ParseCategory(string(got))
			assert.True(t, ok, "Classify(%q, %q) = %q outside fixed set", label, typ, got)
			assert.Equal(t, got, Classify(label, typ), "Classify must be deterministic")
		}
	}
}

func TestIconFor(t *testing.T) {
	tests := []struct {
		label    string
		nodeType string
		want     Icon
	}{
		{"GitHub Repo", "", IconGitBranch},
		{"Registry", "pipeline", IconGitBranch},
		{"Security Scan", "", IconFileCode},
		{"Build Image", "", IconTerminal},
		{"Users", "database", IconTable},
		{"Cache DB", "", IconDatabase},
		{"Sign Up Flow", "client", IconGlobe},
		{"Mobile App", "client", IconGlobe},
		{"Mobile App", "", IconSmartphone},
		{"Auth Gateway", "", IconShield},
		{"Inference Worker", "", IconCPU},
		{"Load Balancer", "gateway", IconCloud},
		{"Core API", "service", IconServer},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.nodeType, func(t *testing.T) {
			assert.Equal(t, tt.want, IconFor(tt.label, tt.nodeType))
		})
	}
}

func TestColorFor(t *testing.T) {
	for _, c := range Categories {
		col := ColorFor(c)
		assert.NotEmpty(t, col.Border, "category %s", c)
		assert.NotEmpty(t, col.Text, "category %s", c)
	}
	assert.Equal(t, ColorFor(Default), ColorFor(Category("bogus")))
	assert.NotEqual(t, ColorFor(Database), ColorFor(Pipeline))
}

func TestResolve(t *testing.T) {
	got := Resolve("Auth Gateway", "")
	require.Equal(t, Service, got.Category)
	assert.Equal(t, IconShield, got.Icon)
	assert.Equal(t, ColorFor(Service), got.Color)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("PIPELINE")
	require.True(t, ok)
	assert.Equal(t, Pipeline, c)

	_, ok = ParseCategory("external")
	assert.False(t, ok)
	_, ok = ParseCategory("")
	assert.False(t, ok)
}
