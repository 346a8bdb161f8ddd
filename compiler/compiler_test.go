package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/detect"
	"github.com/panyam/snippet/parser"
)

// identityTranspiler records what it was asked to transpile.
type identityTranspiler struct {
	scripts []string
	opts    []decl.Options
	err     error
}

func (f *identityTranspiler) Transpile(script string, opts decl.Options) (string, error) {
	f.scripts = append(f.scripts, script)
	f.opts = append(f.opts, opts)
	return script, f.err
}

type fixedTemplates struct {
	out  string
	err  error
	seen []string
}

func (f *fixedTemplates) Compile(tmpl string, opts decl.Options) (string, error) {
	f.seen = append(f.seen, tmpl)
	return f.out, f.err
}

type fixedProbe decl.Options

func (p fixedProbe) Probe() decl.Options { return decl.Options(p) }

func fakeCompiler(templateOut string) (*Compiler, *identityTranspiler, *fixedTemplates) {
	tr := &identityTranspiler{}
	tm := &fixedTemplates{out: templateOut}
	c := New()
	c.Transpiler = tr
	c.Templates = tm
	return c, tr, tm
}

func TestCompileBareLegacy(t *testing.T) {
	c, _, tm := fakeCompiler("with(this){return _c('p')}")
	out, err := c.Compile("const msg = 'hi'\n<p>{{ msg }}</p>", decl.Options{VueVersion: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"<p>{{ msg }}</p>"}, tm.seen)
	assert.Equal(t,
		"const comp = (function() {const msg = 'hi'\n;return {data(){return {msg:msg}}}})()\ncomp.render = function() {with(this){return _c('p')}}\nreturn comp",
		out.Script)
	assert.Empty(t, out.Style)
}

func TestCompileBareModule(t *testing.T) {
	c, _, _ := fakeCompiler("import { h as _h } from 'vue'\nexport function render(_ctx) {return _h('p')}")
	res, err := c.CompileDetailed("<p>hi</p>", decl.Options{})
	require.NoError(t, err)
	assert.Equal(t, detect.KindBare, res.Form)
	assert.Empty(t, res.Captured)
	assert.Equal(t,
		"const comp = (function() {;return {data(){return {}}}})()\ncomp.render = function() {var [_ctx] = arguments\nconst { h: _h } = require('vue')\nreturn _h('p')}\nreturn comp",
		res.Script)
}

func TestCompileConstructor(t *testing.T) {
	c, tr, tm := fakeCompiler("")
	out, err := c.Compile("import Vue from 'vue'\nnew Vue({data(){return {a:1}}})", decl.Options{})
	require.NoError(t, err)
	assert.Equal(t, "const Vue = require('vue');\n;return {data(){return {a:1}}}", out.Script)
	assert.Empty(t, tm.seen)
	require.Len(t, tr.scripts, 1)
}

func TestCompileConstructorLegacyHelper(t *testing.T) {
	c, _, _ := fakeCompiler("")
	out, err := c.Compile("new Vue({render(){return h('b')}})", decl.Options{VueVersion: 2})
	require.NoError(t, err)
	assert.Equal(t, ";return {render(){var h = this.$createElement;return h('b')}}", out.Script)

	out, err = c.Compile("new Vue({render(){return h('b')}})", decl.Options{})
	require.NoError(t, err)
	assert.Equal(t, ";return {render(){return h('b')}}", out.Script)
}

func TestCompileSFCStyle(t *testing.T) {
	c, _, tm := fakeCompiler("with(this){return _c('p')}")
	src := "<template><p>x</p></template>\n<script>export default {a:1}</script>\n<style>p{}</style>"
	res, err := c.CompileDetailed(src, decl.Options{VueVersion: 2})
	require.NoError(t, err)
	assert.Equal(t, detect.KindSFC, res.Form)
	assert.Equal(t, "p{}", res.Style)
	assert.Equal(t, []string{"<p>x</p>"}, tm.seen)
	assert.Equal(t, "const comp = (function() {;return {a:1};})()\ncomp.render = function() {with(this){return _c('p')}}\nreturn comp", res.Script)
}

func TestCompileJSX(t *testing.T) {
	c, tr, _ := fakeCompiler("")
	res, err := c.CompileDetailed("export default {render() { return <p/> }}", decl.Options{JSX: true})
	require.NoError(t, err)
	assert.Equal(t, detect.KindJSX, res.Form)
	assert.Equal(t, ";return {render() { return <p/> }};", res.Script)
	assert.True(t, tr.opts[0].JSX)
}

func TestResolveOptions(t *testing.T) {
	c, tr, _ := fakeCompiler("")
	c.Probe = fixedProbe{Target: "es2020", JSXFactory: "createElement"}

	_, err := c.Compile("1", decl.Options{})
	require.NoError(t, err)
	assert.Equal(t, "es2020", tr.opts[0].Target)
	assert.Equal(t, "createElement", tr.opts[0].JSXFactory)
	assert.Equal(t, "vue", tr.opts[0].FrameworkModule)

	// Caller options win over the probe
	_, err = c.Compile("1", decl.Options{Target: "esnext"})
	require.NoError(t, err)
	assert.Equal(t, "esnext", tr.opts[1].Target)

	// WithProbe leaves the original alone
	c2 := c.WithProbe(fixedProbe{})
	assert.Equal(t, "es2015", c2.ResolveOptions(decl.Options{}).Target)
	assert.Equal(t, "es2020", c.ResolveOptions(decl.Options{}).Target)
}

func TestCompileErrorsPropagate(t *testing.T) {
	c, tr, tm := fakeCompiler("")
	_, err := c.Compile("import {", decl.Options{})
	var perr *parser.ParseError
	assert.True(t, errors.As(err, &perr), "got %v", err)

	tr.err = errors.New("transpile failed")
	_, err = c.Compile("1", decl.Options{})
	assert.Equal(t, tr.err, err)

	tr.err = nil
	tm.err = errors.New("bad template")
	_, err = c.Compile("<p>", decl.Options{})
	assert.True(t, errors.Is(err, tm.err))
}

func TestCompileEndToEnd(t *testing.T) {
	c := New()
	src := `<template>
  <button @click="count++">{{ count }}</button>
</template>
<script>
export default { data() { return { count: 0 } } }
</script>`
	out, err := c.Compile(src, decl.Options{})
	require.NoError(t, err)
	t.Log(out.Script)
	assert.Contains(t, out.Script, "const comp = (function() {")
	assert.Contains(t, out.Script, "comp.render = function() {var [_ctx, _cache] = arguments\n")
	assert.Contains(t, out.Script, `require("vue")`)
	assert.Contains(t, out.Script, "count++")
	assert.NotContains(t, out.Script, "export")

	out, err = c.Compile("const msg = `hi`\n<p>{{ msg }}</p>", decl.Options{VueVersion: 2})
	require.NoError(t, err)
	t.Log(out.Script)
	assert.Contains(t, out.Script, `with(this){return _c("p",[_v(_s(msg))])}`)
	assert.Contains(t, out.Script, "msg")
}
