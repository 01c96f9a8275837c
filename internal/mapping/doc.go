// Package mapping builds the ordered mapping list of one type pair.
//
// Explicit mappings come from declarations written with the Builder DSL or
// loaded from a YAML file; implicit ones come from the matcher. Explicit
// mappings always precede implicit ones and suppress implicit mappings for
// the destination paths they cover, skipped paths included.
//
//	func(b *mapping.Builder) {
//		b.Map(b.Source().Get("Customer.Name")).To("CustomerName")
//		b.Using(convert.MustFunc(strings.ToUpper)).Map(b.Source().Get("Code")).To("Code")
//		b.When(convert.NotNil).Map(b.Source().Get("Address")).To("Shipping")
//		b.Map("pending").To("Status")
//		b.Skip().To("Internal")
//	}
//
// # YAML declarations
//
//	version: "1"
//	mappings:
//	  - source: store.Order
//	    target: warehouse.Order
//	    121:
//	      OrderID: ID
//	    fields:
//	      - target: Status
//	        default: "pending"
//	      - target: [DisplayName, FullName]
//	        source: Customer.Name
//	        transform: upper
//	        condition: not_zero
//	      - target: Self
//	        source: "."
//	    ignore:
//	      - Internal
//	transforms:
//	  - name: upper
//	    source_type: string
//	    target_type: string
//
// Errors of one declaration run accumulate in a diagnostic.Diagnostics and
// are reported together.
package mapping
