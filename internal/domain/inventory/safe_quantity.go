package inventory

// DefaultSafetyBuffer is the global stock buffer subtracted from every
// supplier-reported quantity before it becomes sellable. A deliberate
// simplification: the per-(shop, supplier) policy carries its own
// BufferStock, and the shop-scoped calculation consults it, but the
// supplier-wide calculation has no shop context and falls back to this
// constant.
const DefaultSafetyBuffer = 5

// SafeQuantity computes the sellable quantity for a raw supplier-reported
// quantity and a buffer, floored at zero to avoid overselling.
func SafeQuantity(rawQty, buffer int) int {
	safe := rawQty - buffer
	if safe < 0 {
		return 0
	}
	return safe
}
