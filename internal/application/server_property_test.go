package application

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"website-mcp-server/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: every response carries exactly the id of its request, and
// requests without an id never produce a body. This is the dispatcher's
// core contract and must hold for any method name.
func TestPropertyIDHandling(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genMethod := gen.OneConstOf(
		"initialize", "tools/list", "ping", "tools/call",
		"resources/list", "prompts/list", "nonsense",
	)
	genID := gen.Int64Range(-1000, 1000)

	server := newTestServer()

	properties.Property("response id equals request id", prop.ForAll(
		func(method string, id int64) bool {
			raw := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":%q}`, id, method)

			out := server.HandleMessage(context.Background(), []byte(raw))
			if out == nil {
				return false
			}

			var resp domain.Response
			if err := json.Unmarshal(out, &resp); err != nil {
				return false
			}
			return string(resp.ID) == fmt.Sprintf("%d", id)
		},
		genMethod, genID,
	))

	properties.Property("requests without id yield no body", prop.ForAll(
		func(method string) bool {
			raw := fmt.Sprintf(`{"jsonrpc":"2.0","method":%q}`, method)
			return server.HandleMessage(context.Background(), []byte(raw)) == nil
		},
		genMethod,
	))

	properties.Property("unknown methods always map to -32601", prop.ForAll(
		func(suffix int64) bool {
			raw := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"no/such/method/%d"}`, suffix)

			out := server.HandleMessage(context.Background(), []byte(raw))
			var resp domain.Response
			if err := json.Unmarshal(out, &resp); err != nil {
				return false
			}
			return resp.Error != nil && resp.Error.Code == domain.MethodNotFound
		},
		gen.Int64Range(0, 1<<30),
	))

	properties.TestingRun(t)
}
