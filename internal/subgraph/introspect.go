package subgraph

import "context"

const schemaQuery = `
{
  __schema {
    queryType {
      fields {
        name
        description
      }
    }
  }
}
`

const typeQueryTemplate = `
query TypeFields($name: String!) {
  __type(name: $name) {
    name
    fields {
      name
      type {
        name
        kind
      }
    }
  }
}
`

// SchemaField is one queryable field on the subgraph's root query type.
type SchemaField struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TypeField is one field on a named type.
type TypeField struct {
	Name string `json:"name"`
	Type struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
	} `json:"type"`
}

// IntrospectSchema lists the root query fields the subgraph exposes.
func (c *Client) IntrospectSchema(ctx context.Context) ([]SchemaField, error) {
	var data struct {
		Schema struct {
			QueryType struct {
				Fields []SchemaField `json:"fields"`
			} `json:"queryType"`
		} `json:"__schema"`
	}
	if err := c.do(ctx, schemaQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Schema.QueryType.Fields, nil
}

// IntrospectType lists the fields of a named subgraph type.
func (c *Client) IntrospectType(ctx context.Context, typeName string) ([]TypeField, error) {
	var data struct {
		Type *struct {
			Fields []TypeField `json:"fields"`
		} `json:"__type"`
	}
	err := c.do(ctx, typeQueryTemplate, map[string]interface{}{"name": typeName}, &data)
	if err != nil {
		return nil, err
	}
	if data.Type == nil {
		return nil, nil
	}
	return data.Type.Fields, nil
}
