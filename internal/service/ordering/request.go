package ordering

import "github.com/vladislavdragonenkov/checkout/internal/domain"

// requestedSet - запрошенные количества по товарам после слияния повторов.
// Суммы хранятся в int64: повторы одного id могут в сумме превысить int32.
type requestedSet struct {
	order []string
	qty   map[string]int64
}

// mergeRequested суммирует количества повторяющихся id, сохраняя порядок первого упоминания.
func mergeRequested(products []RequestedProduct) requestedSet {
	set := requestedSet{
		order: make([]string, 0, len(products)),
		qty:   make(map[string]int64, len(products)),
	}
	for _, p := range products {
		if _, seen := set.qty[p.ID]; !seen {
			set.order = append(set.order, p.ID)
		}
		set.qty[p.ID] += int64(p.Quantity)
	}
	return set
}

func (r requestedSet) ids() []string {
	return append([]string(nil), r.order...)
}

// quantity возвращает запрошенное количество и признак того, что товар был запрошен.
func (r requestedSet) quantity(id string) (int64, bool) {
	qty, ok := r.qty[id]
	return qty, ok
}

// missing возвращает id, для которых не нашлось товара.
func (r requestedSet) missing(found []domain.Product) []string {
	present := make(map[string]struct{}, len(found))
	for _, p := range found {
		present[p.ID] = struct{}{}
	}
	var missing []string
	for _, id := range r.order {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
