package models

// Confusion counts predictions against labels, with true as the positive class.
type Confusion struct {
    TP int `json:"tp"`
    FP int `json:"fp"`
    TN int `json:"tn"`
    FN int `json:"fn"`
}

func NewConfusion(y, pred []bool) Confusion {
    var c Confusion
    for i := range y {
        if i >= len(pred) { break }
        switch {
        case y[i] && pred[i]:
            c.TP++
        case !y[i] && pred[i]:
            c.FP++
        case !y[i] && !pred[i]:
            c.TN++
        default:
            c.FN++
        }
    }
    return c
}

func (c Confusion) Total() int { return c.TP + c.FP + c.TN + c.FN }

func (c Confusion) Accuracy() float64 { return ratio(c.TP+c.TN, c.Total()) }

func (c Confusion) Precision() float64 { return ratio(c.TP, c.TP+c.FP) }

func (c Confusion) Recall() float64 { return ratio(c.TP, c.TP+c.FN) }

func (c Confusion) F1() float64 {
    p, r := c.Precision(), c.Recall()
    if p+r == 0 { return 0 }
    return 2 * p * r / (p + r)
}

// Accuracy is the fraction of positions where pred matches y.
func Accuracy(y, pred []bool) float64 { return NewConfusion(y, pred).Accuracy() }

func ratio(a, b int) float64 {
    if b == 0 { return 0 }
    return float64(a) / float64(b)
}
