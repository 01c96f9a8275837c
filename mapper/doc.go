// Package mapper maps values between unrelated struct graphs.
//
// A Mapper discovers which source properties correspond to which destination
// properties, compiles the correspondence into a TypeMap per type pair and
// caches it. Explicit declarations, written with a Builder or loaded from
// YAML, override what the matcher finds:
//
//	m := mapper.New(mapper.WithOptions(options.WithStrategy(options.StrategyStrict)))
//
//	_, err := m.AddMappings(reflect.TypeFor[store.Order](), reflect.TypeFor[warehouse.Order](),
//		func(b *mapper.Builder) {
//			b.Map(b.Source().Get("Customer.FullName")).To("CustomerName")
//			b.Skip().To("Internal")
//		})
//
//	order, err := mapper.Map[warehouse.Order](m, src)
//
// A Mapper is safe for concurrent use. Each Mapper owns its plans,
// converters and named transforms.
package mapper
