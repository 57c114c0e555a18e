// Package schema registers numeric strings as a schema type with chainable
// constraints, and validates whole documents against a set of such fields.
//
// A NumericSchema is built fluently and is immutable, so shared bases can be
// extended per use:
//
//	price := schema.Numeric().GT(validator.Lit(0)).MaxDecimals(2)
//	discount := price.LTE(validator.Ref("price"), "%{field} cannot exceed the price")
//
//	obj := schema.Object(map[string]*schema.NumericSchema{
//	    "price":    price.Required(),
//	    "discount": discount,
//	})
//	err := obj.Validate(schema.Document{"price": "10.00", "discount": "12"})
//
// Fields are absent unless Required is set. References are resolved from the
// same Document using dotted paths ("limits.max", "items.0.price").
//
// Object schemas can also be declared in YAML or JSON (see Definition) and
// loaded with LoadSchema. Documents loaded through LoadDocument or
// DecodeJSONDocument keep numbers as json.Number so large or very precise
// values reach the validator unchanged.
package schema
