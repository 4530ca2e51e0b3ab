package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	name    string
	aliases []string
	ran     *[]string
}

func (s stub) Name() string        { return s.name }
func (s stub) Description() string { return "stub " + s.name }
func (s stub) Aliases() []string   { return s.aliases }

func (s stub) Run(context.Context, *Invocation) error {
	*s.ran = append(*s.ran, s.name)
	return nil
}

func TestParse(t *testing.T) {
	inv, ok := Parse("e!", "e!Set_Reply_Threshold  40 ")
	require.True(t, ok)
	assert.Equal(t, "set_reply_threshold", inv.Name)
	assert.Equal(t, []string{"40"}, inv.Args)

	_, ok = Parse("e!", "hello there")
	assert.False(t, ok)
	_, ok = Parse("e!", "e!   ")
	assert.False(t, ok)
}

func TestRegistryAliases(t *testing.T) {
	var ran []string
	r := NewRegistry()
	require.NoError(t, r.Register(stub{name: "aisling_help", aliases: []string{"aislinghelp"}, ran: &ran}))
	require.NoError(t, r.Register(stub{name: "thresholds", ran: &ran}))

	assert.Equal(t, "aisling_help", r.Get("AISLINGHELP").Name())
	assert.Nil(t, r.Get("missing"))
	assert.Len(t, r.GetAll(), 2)
	assert.Equal(t, "aisling_help", r.GetAll()[0].Name())

	assert.Error(t, r.Register(stub{name: "other", aliases: []string{"thresholds"}, ran: &ran}))
}

func TestApplyOrder(t *testing.T) {
	var trace []string
	mw := func(tag string) Middleware {
		return func(c Command) Command {
			return Wrap(c, func(ctx context.Context, inv *Invocation) error {
				trace = append(trace, tag)
				return c.Run(ctx, inv)
			})
		}
	}

	base := stub{name: "base", ran: &trace}
	c := Apply(base, mw("outer"), mw("inner"))
	require.NoError(t, c.Run(context.Background(), &Invocation{}))

	assert.Equal(t, []string{"outer", "inner", "base"}, trace)
	assert.Equal(t, "base", c.Name())
	assert.Equal(t, base, Root(c))
}
