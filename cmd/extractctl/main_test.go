package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extract-store/internal/service"
)

const examplePayload = `{"first_name": "Steve", "last_name": "McClellan", "list": [1, 2, 3], "location": {"state": "CA", "zip_code": 94806}, "other_info": {"name_info": {"middle_name": "Martin"}}}`

const exampleRecord = `{"first_name":"Steve","middle_name":"Martin","last_name":"McClellan","zip_code":94806}`

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractCmd_Stdin(t *testing.T) {
	out, err := runCmd(t, examplePayload, "extract")
	require.NoError(t, err)
	assert.Equal(t, exampleRecord+"\n", out)
}

func TestExtractCmd_Files(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", examplePayload)
	b := writeFile(t, dir, "b.json", `{"zip_code": 10001}`)

	out, err := runCmd(t, "", "extract", a, b)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, exampleRecord, lines[0])
	assert.Equal(t, `{"zip_code":10001}`, lines[1])
}

func TestExtractCmd_NoFields(t *testing.T) {
	_, err := runCmd(t, `{"favorite_color": "green"}`, "extract")
	require.Error(t, err)
	assert.Equal(t, service.MsgNoFields, err.Error())
}

func TestExtractCmd_Malformed(t *testing.T) {
	_, err := runCmd(t, `{"first_name":`, "extract", "-")
	require.ErrorIs(t, err, service.ErrMalformedPayload)
}

func TestExtractCmd_Merge(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"person": {"first_name": "Steve", "last_name": "McClellan"}}`)
	b := writeFile(t, dir, "b.json", `{"middle_name": "Martin", "address": {"zip_code": 94806}}`)
	c := writeFile(t, dir, "c.json", `{"first_name": "Ignored"}`)

	out, err := runCmd(t, "", "extract", "--merge", a, b, c)
	require.NoError(t, err)
	assert.Equal(t, exampleRecord+"\n", out)
}

func TestExtractCmd_MergeIgnoresFileNames(t *testing.T) {
	dir := t.TempDir()
	zip := writeFile(t, dir, "zip_code", `94806`)
	name := writeFile(t, dir, "first_name", `"Steve"`)
	a := writeFile(t, dir, "a.json", `{"last_name": "McClellan"}`)

	out, err := runCmd(t, "", "extract", "--merge", zip, name, a)
	require.NoError(t, err)
	assert.Equal(t, `{"last_name":"McClellan"}`+"\n", out)
}

func TestExtractCmd_SelectEventBody(t *testing.T) {
	event := `{"resource": "/records", "body": ` + strconv.Quote(examplePayload) + `, "isBase64Encoded": false}`

	out, err := runCmd(t, event, "extract", "--select", "body")
	require.NoError(t, err)
	assert.Equal(t, exampleRecord+"\n", out)

	out, err = runCmd(t, `{"detail": {"person": {"zip_code": 10001}}}`, "extract", "--select", "detail.person")
	require.NoError(t, err)
	assert.Equal(t, `{"zip_code":10001}`+"\n", out)

	_, err = runCmd(t, event, "extract", "--select", "missing")
	require.Error(t, err)
}

func TestExtractCmd_StoreRejectsMerge(t *testing.T) {
	_, err := runCmd(t, examplePayload, "extract", "--store", "--merge")
	require.Error(t, err)
}

func TestExtractCmd_StoreWithMemoryBackend(t *testing.T) {
	t.Setenv("BUCKET_NAME", "records")
	t.Setenv("STORAGE_BACKEND", "memory")

	out, err := runCmd(t, examplePayload, "extract", "--store")
	require.NoError(t, err)
	assert.Equal(t, exampleRecord+"\n", out)

	_, err = runCmd(t, `{"favorite_color": "green"}`, "extract", "--store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), service.MsgNoFields)
}

func TestKeyCmd(t *testing.T) {
	// 1986-07-18T09:15:00Z
	out, err := runCmd(t, "", "key", "--epoch-ms", "522062100000", "--suffix", ".json")
	require.NoError(t, err)

	key := strings.TrimSpace(out)
	parts := strings.Split(key, "/")
	require.Len(t, parts, 4)
	assert.Equal(t, []string{"1986", "07", "18"}, parts[:3])
	require.True(t, strings.HasSuffix(parts[3], ".json"))
	_, err = uuid.Parse(strings.TrimSuffix(parts[3], ".json"))
	assert.NoError(t, err)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	out, err := runCmd(t, "", "token", "--subject", "client-1")
	require.NoError(t, err)

	claims, err := service.NewTokenService("secret", 0).Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.Subject)
}

func TestTokenCmd_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := runCmd(t, "", "token", "--subject", "client-1")
	require.Error(t, err)
}
