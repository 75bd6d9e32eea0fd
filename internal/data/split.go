package data

import "math/rand"

// StratifiedSplit shuffles msgs with seed and moves testRatio of each class
// into the test set, so both sets keep the corpus' spam rate.
func StratifiedSplit(msgs []Message, testRatio float64, seed int64) (train, test []Message) {
    rng := rand.New(rand.NewSource(seed))
    var posIdx, negIdx []int
    for i, m := range msgs {
        if m.Spam { posIdx = append(posIdx, i) } else { negIdx = append(negIdx, i) }
    }
    for _, idx := range [][]int{posIdx, negIdx} {
        rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
        nTrain := len(idx) - int(testRatio*float64(len(idx)))
        for k, i := range idx {
            if k < nTrain { train = append(train, msgs[i]) } else { test = append(test, msgs[i]) }
        }
    }
    rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
    rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
    return train, test
}
