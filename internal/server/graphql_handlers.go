package server

import (
	"time"

	"inkwell/internal/loader"
	"inkwell/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// graphqlRequest is the standard POST body for the endpoint.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// HandleGraphQL executes one GraphQL request. A fresh loader set is attached
// to the request context so relationship resolvers batch their lookups within
// this request only.
func (s *Server) HandleGraphQL(c *fiber.Ctx) error {
	var req graphqlRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []fiber.Map{{"message": "invalid request body"}},
		})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []fiber.Map{{"message": "query is required"}},
		})
	}

	ctx := loader.With(c.UserContext(), loader.New(s.userRepo, s.postRepo, s.commentRepo))

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	if len(result.Errors) > 0 {
		middleware.Logger.WarnContext(ctx, "graphql request finished with errors",
			"operation", req.OperationName,
			"errors", len(result.Errors),
		)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderLastModified, time.Now().UTC().Format(time.RFC1123))
	return c.JSON(result)
}

// GraphiQL serves a minimal in-browser IDE pointed at the endpoint. Only
// routed outside production.
func (s *Server) GraphiQL(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(graphiqlPage)
}

const graphiqlPage = `<!DOCTYPE html>
<html>
<head>
  <title>Inkwell GraphiQL</title>
  <style>html, body, #graphiql { height: 100%; margin: 0; }</style>
  <link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
</head>
<body>
  <div id="graphiql">Loading...</div>
  <script src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
  <script src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
  <script src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
  <script>
    ReactDOM.createRoot(document.getElementById('graphiql')).render(
      React.createElement(GraphiQL, {
        fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
      })
    );
  </script>
</body>
</html>`
