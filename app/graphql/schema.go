// Package graphql exposes a read-only query surface over the admin data.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/app/services"
	"github.com/rohanwest/pancake/pkg/response"
)

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.String},
		"email":   &graphql.Field{Type: graphql.String},
		"isAdmin": &graphql.Field{Type: graphql.Boolean},
		"createdAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.User).CreatedAt, nil
			},
		},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.String},
		"userId":    &graphql.Field{Type: graphql.String},
		"userEmail": &graphql.Field{Type: graphql.String},
		"total":     &graphql.Field{Type: graphql.Float},
		"status":    &graphql.Field{Type: graphql.String},
		"items": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return string(p.Source.(models.Order).Items), nil
			},
		},
	},
})

var rewardType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Reward",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"userId":      &graphql.Field{Type: graphql.String},
		"title":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"points":      &graphql.Field{Type: graphql.Int},
		"status":      &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the admin query schema over the three services.
func NewSchema(auth *services.AuthService, orders *services.OrderService, rewards *services.RewardService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
					return auth.ListUsers()
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
					return orders.List()
				},
			},
			"rewards": &graphql.Field{
				Type: graphql.NewList(rewardType),
				Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
					return rewards.List()
				},
			},
			"userRewards": &graphql.Field{
				Type: graphql.NewList(rewardType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return rewards.ForUser(p.Args["userId"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

// Handler serves POST /admin/graphql.
func Handler(schema graphql.Schema) http.HandlerFunc {
	type request struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "invalid GraphQL request body")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
