// Package plan compiles and stores the mapping plans of type pairs.
//
// Compile pipeline for one (source, destination) pair:
//  1. Run the explicit declarations through the mapping builder
//  2. Match the destination paths the declarations leave uncovered
//     (skipped when a whole-plan converter is supplied)
//  3. Compose explicit and implicit mappings and pick a conversion
//     strategy for each
//  4. Publish the TypeMap, or fail with every diagnostic at once
//
// The Store publishes immutable snapshots: lookups never take a lock and a
// failed compile or merge leaves the published state untouched.
package plan
