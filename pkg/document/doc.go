// Package document models the nested mapping/list/scalar tree that flows
// between the conversion stages. Mappings preserve insertion order end-to-end
// so serialized output stays deterministic from extraction through rendering.
package document
