package rpc_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/architeacher/storetools/internal/adapters/inbound/rpc"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/usecases/tools"
	"github.com/architeacher/storetools/pkg/logger"
	"github.com/architeacher/storetools/pkg/validation"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite

	calls   atomic.Int32
	catalog *tools.Catalog
}

func TestServerTestSuite(t *testing.T) {
	t.Parallel()

	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.calls.Store(0)

	catalog, err := tools.NewCatalog(
		tools.Tool{
			Name:        "get_product",
			Description: "Get a product.",
			Group:       tools.GroupCommerce,
			Schema:      validation.Schema{"id": {Type: validation.TypeInteger, Required: true}},
			Handler: func(_ context.Context, args map[string]any) (json.RawMessage, error) {
				s.calls.Add(1)

				return json.Marshal(map[string]any{"id": args["id"], "name": "Shirt"})
			},
		},
		tools.Tool{
			Name:        "delete_order",
			Description: "Delete an order.",
			Group:       tools.GroupCommerce,
			Schema:      validation.Schema{},
			Handler: func(context.Context, map[string]any) (json.RawMessage, error) {
				s.calls.Add(1)

				return nil, &model.HTTPError{Method: http.MethodDelete, URL: "orders/1", Status: http.StatusNotFound, Body: []byte(`{"code":"woocommerce_rest_shop_order_invalid_id"}`)}
			},
		},
	)
	s.Require().NoError(err)

	s.catalog = catalog
}

func (s *ServerTestSuite) serve(lines ...string) map[string]rawResponse {
	server := rpc.NewServer(s.catalog, rpc.Config{Name: "storetools", Version: "test", MaxConcurrentCalls: 4}, logger.NewTestLogger())

	var out bytes.Buffer
	s.Require().NoError(server.Serve(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out))

	responses := make(map[string]rawResponse)

	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}

		var resp rawResponse
		s.Require().NoError(json.Unmarshal([]byte(line), &resp), line)
		s.Require().Equal("2.0", resp.JSONRPC)

		responses[string(resp.ID)] = resp
	}

	return responses
}

type rawResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpc.Error      `json:"error"`
}

func (s *ServerTestSuite) TestInitializeAndPing() {
	responses := s.serve(
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":"p","method":"ping"}`,
	)

	s.Require().Len(responses, 2)

	var init rpc.InitializeResult
	s.Require().NoError(json.Unmarshal(responses["1"].Result, &init))
	s.Require().Equal("storetools", init.ServerInfo.Name)
	s.Require().Contains(init.Capabilities, "tools")

	s.Require().JSONEq(`{}`, string(responses[`"p"`].Result))
}

func (s *ServerTestSuite) TestToolsListPublishesSchemas() {
	responses := s.serve(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	var list rpc.ToolsListResult
	s.Require().NoError(json.Unmarshal(responses["2"].Result, &list))
	s.Require().Len(list.Tools, 2)
	s.Require().Equal("delete_order", list.Tools[0].Name)
	s.Require().Equal("get_product", list.Tools[1].Name)
	s.Require().Equal([]any{"id"}, list.Tools[1].InputSchema["required"])
}

func (s *ServerTestSuite) TestToolsCall() {
	responses := s.serve(
		`{"jsonrpc":"2.0","id":10,"method":"tools/call","params":{"name":"get_product","arguments":{"id":7}}}`,
		`{"jsonrpc":"2.0","id":11,"method":"tools/call","params":{"name":"get_product","arguments":{"id":"x"}}}`,
		`{"jsonrpc":"2.0","id":12,"method":"tools/call","params":{"name":"delete_order","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":13,"method":"tools/call","params":{"name":"launch_rocket"}}`,
	)

	s.Require().Len(responses, 4)

	var ok rpc.CallResult
	s.Require().NoError(json.Unmarshal(responses["10"].Result, &ok))
	s.Require().False(ok.IsError)
	s.Require().JSONEq(`{"id":7,"name":"Shirt"}`, ok.Content[0].Text)

	var invalid rpc.CallResult
	s.Require().NoError(json.Unmarshal(responses["11"].Result, &invalid))
	s.Require().True(invalid.IsError)
	s.Require().Contains(invalid.Content[0].Text, "validation failed")

	var rejected rpc.CallResult
	s.Require().NoError(json.Unmarshal(responses["12"].Result, &rejected))
	s.Require().True(rejected.IsError)
	s.Require().Equal(
		`DELETE orders/1: upstream responded 404 Not Found: {"code":"woocommerce_rest_shop_order_invalid_id"}`,
		rejected.Content[0].Text,
	)
	s.Require().Equal(1, strings.Count(rejected.Content[0].Text, "woocommerce_rest_shop_order_invalid_id"))

	s.Require().NotNil(responses["13"].Error)
	s.Require().Equal(rpc.CodeInvalidParams, responses["13"].Error.Code)

	s.Require().Equal(int32(2), s.calls.Load())
}

func (s *ServerTestSuite) TestProtocolErrors() {
	responses := s.serve(
		`{not json`,
		`{"jsonrpc":"1.0","id":3,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":4,"method":"resources/list"}`,
		``,
	)

	s.Require().Len(responses, 3)
	s.Require().Equal(rpc.CodeParseError, responses["null"].Error.Code)
	s.Require().Equal(rpc.CodeInvalidRequest, responses["3"].Error.Code)
	s.Require().Equal(rpc.CodeMethodNotFound, responses["4"].Error.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	catalog, err := tools.NewCatalog()
	require.NoError(t, err)

	server := rpc.NewServer(catalog, rpc.Config{}, logger.NewTestLogger())

	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, server.Serve(ctx, reader, &bytes.Buffer{}))
}
