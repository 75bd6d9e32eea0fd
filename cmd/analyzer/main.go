package main

import (
    "errors"
    "fmt"
    "os"
    "strings"

    "github.com/AlecAivazis/survey/v2"
    "github.com/AlecAivazis/survey/v2/terminal"
    flag "github.com/spf13/pflag"
    "go.uber.org/zap"

    "bm25tree/internal/config"
    "bm25tree/internal/data"
    "bm25tree/internal/models"
    "bm25tree/internal/report"
    "bm25tree/pkg/utils"
)

func main() {
    cfgPath := flag.StringP("config", "c", os.Getenv("BM25TREE_CONFIG"), "YAML config file")
    seed := flag.Int64("seed", 1, "Seed for the train/test split")
    testRatio := flag.Float64("test-ratio", 0.2, "Fraction of each class held out")
    points := flag.Int("points", 10, "Number of pruning thresholds")
    outImg := flag.String("out-img", "cmd/api/static/prune_curve.png", "Prune curve PNG")
    outCsv := flag.String("out-csv", "data/prune_curve.csv", "Prune curve CSV")
    interactive := flag.BoolP("interactive", "i", false, "Classify messages typed at a prompt")
    flag.Parse()

    logger := utils.Logger()
    defer logger.Sync()

    cfg, err := config.Load(*cfgPath)
    if err != nil { logger.Fatal("load config", zap.Error(err)) }
    msgs, err := data.LoadTSV(cfg.Corpus)
    if err != nil { logger.Fatal("load corpus", zap.String("path", cfg.Corpus), zap.Error(err)) }
    if len(msgs) == 0 { fmt.Println("empty corpus"); return }

    train, test := data.StratifiedSplit(msgs, *testRatio, *seed)
    trTexts, trLabels := data.Split(train)
    teTexts, teLabels := data.Split(test)

    v, err := cfg.Vectorizer.Build()
    if err != nil { logger.Fatal("build vectorizer", zap.Error(err)) }
    clf, err := models.Train(trTexts, trLabels, v, cfg.Tree.Options()...)
    if err != nil { logger.Fatal("train", zap.Error(err)) }

    // Pruning with a growing threshold is cumulative, so one tree serves
    // every point of the curve.
    c := report.Curve{Title: "Accuracy by pruning threshold", XLabel: "min_samples", YLabel: "metric"}
    var trainAcc, testAcc, testF1, leaves []float64
    full := float64(clf.Stats().Leaves)
    for _, n := range append([]int{0}, report.CurveSizes(len(train), *points, 2, true)...) {
        clf.Prune(n)
        ptr, err := clf.ClassifyBatch(trTexts)
        if err != nil { logger.Fatal("classify", zap.Error(err)) }
        pte, err := clf.ClassifyBatch(teTexts)
        if err != nil { logger.Fatal("classify", zap.Error(err)) }
        st := clf.Stats()
        cm := models.NewConfusion(teLabels, pte)

        c.X = append(c.X, float64(n))
        trainAcc = append(trainAcc, models.Accuracy(trLabels, ptr))
        testAcc = append(testAcc, cm.Accuracy())
        testF1 = append(testF1, cm.F1())
        leaves = append(leaves, float64(st.Leaves)/full)
        fmt.Printf("prune=%d | nodes=%d | depth=%d | train=%.3f | test=%.3f | f1=%.3f\n",
            n, st.Nodes, st.Depth, trainAcc[len(trainAcc)-1], cm.Accuracy(), cm.F1())
    }
    c.Series = []report.Series{
        {Name: "train_acc", Values: trainAcc},
        {Name: "test_acc", Values: testAcc},
        {Name: "test_f1", Values: testF1},
        {Name: "leaf_fraction", Values: leaves},
    }
    if err := c.WriteCSV(*outCsv); err != nil {
        fmt.Println("write csv:", err)
    } else {
        fmt.Println("curve saved to", *outCsv)
    }
    if err := c.SavePNG(*outImg); err != nil {
        fmt.Println("write png:", err)
    } else {
        fmt.Println("chart saved to", *outImg)
    }

    if !*interactive { return }
    // Classify with the unpruned tree, or the configured pruning.
    clf, err = models.Train(trTexts, trLabels, v, cfg.Tree.Options()...)
    if err != nil { logger.Fatal("train", zap.Error(err)) }
    if cfg.Prune > 0 { clf.Prune(cfg.Prune) }
    for {
        var msg string
        err := survey.AskOne(&survey.Input{Message: "Message (empty to quit):"}, &msg)
        if errors.Is(err, terminal.InterruptErr) { return }
        if err != nil { logger.Fatal("prompt", zap.Error(err)) }
        if strings.TrimSpace(msg) == "" { return }
        spam, err := clf.Classify(msg)
        if err != nil { logger.Fatal("classify", zap.Error(err)) }
        if spam { fmt.Println("spam") } else { fmt.Println("not spam") }
    }
}
