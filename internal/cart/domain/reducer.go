package domain

// Action is one cart transition. The set is closed: only the types in this
// file implement it.
type Action interface {
	isAction()
}

// AddItem adds one unit of Item; its Quantity is ignored.
type AddItem struct {
	Item LineItem
}

type RemoveItem struct {
	Key Key
}

// UpdateQuantity sets the quantity of every line of ProductID, whatever
// size and color the line has.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// UpdateLineQuantity sets the quantity of exactly the line named by Key.
type UpdateLineQuantity struct {
	Key      Key
	Quantity int
}

type Clear struct{}

func (AddItem) isAction()            {}
func (RemoveItem) isAction()         {}
func (UpdateQuantity) isAction()     {}
func (UpdateLineQuantity) isAction() {}
func (Clear) isAction()              {}

// Reduce applies a to c and returns the resulting cart. c is not modified.
// Quantities below zero are treated as zero and zero-quantity lines are dropped.
func Reduce(c Cart, a Action) Cart {
	switch a := a.(type) {
	case AddItem:
		return add(c, a.Item)
	case RemoveItem:
		return filter(c, func(it LineItem) bool { return it.Key() != a.Key })
	case UpdateQuantity:
		return setQuantity(c, func(it LineItem) bool { return it.ProductID == a.ProductID }, a.Quantity)
	case UpdateLineQuantity:
		return setQuantity(c, func(it LineItem) bool { return it.Key() == a.Key }, a.Quantity)
	case Clear:
		return Empty()
	default:
		return c
	}
}

func add(c Cart, item LineItem) Cart {
	items := make([]LineItem, 0, len(c.Items)+1)
	found := false
	for _, it := range c.Items {
		if !found && it.Key() == item.Key() {
			it.Quantity++
			found = true
		}
		items = append(items, it)
	}
	if !found {
		item.Quantity = 1
		items = append(items, item)
	}
	return withTotals(items)
}

func filter(c Cart, keep func(LineItem) bool) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		if keep(it) {
			items = append(items, it)
		}
	}
	return withTotals(items)
}

func setQuantity(c Cart, match func(LineItem) bool, quantity int) Cart {
	quantity = max(0, quantity)
	items := make([]LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		if match(it) {
			it.Quantity = quantity
		}
		if it.Quantity > 0 {
			items = append(items, it)
		}
	}
	return withTotals(items)
}
