package cli_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurnickita/creditorder/internal/cli"
)

func newBackend(t *testing.T, orderReply string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clientes", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":1,"nome":"Mercado Sol","limiteCredito":"1000.00"}]`)
	})
	mux.HandleFunc("GET /api/produtos", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":10,"nome":"Arroz","preco":"10.00"},{"id":11,"nome":"Feijão","preco":"7.50"}]`)
	})
	mux.HandleFunc("GET /api/clientes/1/credito", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"clienteId":1,"clienteNome":"Mercado Sol","limiteCredito":"1000.00","valorUtilizado":"200.00","saldoDisponivel":"800.00"}`)
	})
	mux.HandleFunc("POST /api/pedidos", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, orderReply)
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("API_URL", srv.URL+"/api")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("LOG_LEVEL", "fatal")
	t.Setenv("DATABASE_URI", "")
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCatalogCommand(t *testing.T) {
	newBackend(t, "")

	out, err := execute(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Mercado Sol")
	assert.Contains(t, out, "R$ 1.000,00")
	assert.Contains(t, out, "Feijão")
	assert.Contains(t, out, "R$ 7,50")

	out, err = execute(t, "catalog", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"clientes"`)
	assert.Contains(t, out, `"produtos"`)
}

func TestCreditCommand(t *testing.T) {
	newBackend(t, "")

	out, err := execute(t, "credit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Mercado Sol")
	assert.Contains(t, out, "R$ 800,00")
	assert.Contains(t, out, "20,0%")

	_, err = execute(t, "credit", "x")
	assert.Error(t, err)

	_, err = execute(t, "credit", "7")
	assert.Error(t, err)
}

func TestOrderCommandApproved(t *testing.T) {
	newBackend(t, `{"id":42,"clienteId":1,"status":"APROVADO","valorTotal":45,"limiteCredito":1000,"valorUtilizado":245,"saldoDisponivel":755}`)

	out, err := execute(t, "order", "--cliente", "1", "--item", "10:3", "--item", "11:2")
	require.NoError(t, err)
	assert.Contains(t, out, "R$ 45,00")
	assert.Contains(t, out, "APROVADO")
	assert.Contains(t, out, "#42")
}

func TestOrderCommandRejected(t *testing.T) {
	newBackend(t, `{"id":43,"status":"REJEITADO","valorTotal":900,"limiteCredito":1000,"valorJaUtilizado":200,"saldoDisponivel":800}`)

	out, err := execute(t, "order", "--cliente", "1", "--item", "10:90")
	require.NoError(t, err)
	assert.Contains(t, out, "REJEITADO")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "Saldo insuficiente")
}

func TestOrderCommandDryRun(t *testing.T) {
	newBackend(t, `{"status":"APROVADO"}`)

	out, err := execute(t, "order", "--cliente", "1", "--item", "10", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Arroz")
	assert.NotContains(t, out, "APROVADO")
}

func TestOrderCommandErrors(t *testing.T) {
	newBackend(t, "")

	_, err := execute(t, "order", "--cliente", "9", "--item", "10:1")
	assert.ErrorContains(t, err, "customer 9 not found")

	_, err = execute(t, "order", "--cliente", "1", "--item", "10:0")
	assert.ErrorContains(t, err, "invalid quantity")

	_, err = execute(t, "order", "--cliente", "1", "--item", "99:1")
	assert.Error(t, err)

	_, err = execute(t, "order", "--cliente", "1")
	assert.Error(t, err)

	for _, id := range []string{"0", "-3"} {
		_, err = execute(t, "order", "--cliente", id, "--item", "10:1", "--dry-run")
		assert.ErrorContains(t, err, "invalid customer id")
	}
}

func TestHealthCommand(t *testing.T) {
	newBackend(t, "")

	out, err := execute(t, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestHistoryCommandNeedsDatabase(t *testing.T) {
	newBackend(t, "")

	_, err := execute(t, "history")
	assert.ErrorContains(t, err, "DATABASE_URI")
}
