package main

import (
    "fmt"
    "os"
    "time"

    "github.com/oklog/ulid/v2"
    flag "github.com/spf13/pflag"
    "go.uber.org/zap"

    "bm25tree/internal/config"
    "bm25tree/internal/data"
    "bm25tree/internal/models"
    "bm25tree/internal/report"
    "bm25tree/pkg/utils"
)

type fitted struct {
    name  string
    train []bool
    test  []bool
    clf   *models.TextClassifier
}

func main() {
    cfgPath := flag.StringP("config", "c", os.Getenv("BM25TREE_CONFIG"), "YAML config file")
    regen := flag.Bool("regen", false, "Regenerate the synthetic corpus before training")
    n := flag.IntP("count", "n", 5000, "Number of synthetic messages")
    spamRate := flag.Float64("spam-rate", 0.08, "Base spam rate of the synthetic corpus")
    seed := flag.Int64("seed", 1, "Seed for corpus generation, splitting and ensembles")
    testRatio := flag.Float64("test-ratio", 0.2, "Fraction of each class held out")
    algo := flag.String("algo", "dt", "Model: dt|bagging|rf|gb")
    estimators := flag.Int("estimators", 30, "Number of estimators (bagging/rf/gb)")
    lr := flag.Float64("lr", 0.1, "Learning rate for gb")
    printTree := flag.Bool("print", false, "Print the tree (dt only)")
    curve := flag.Bool("curve", true, "Write a learning curve (PNG and CSV)")
    curvePoints := flag.Int("curve-points", 8, "Number of points on the curve")
    curveMin := flag.Int("curve-min", 50, "Smallest training size on the curve")
    curveLog := flag.Bool("curve-log", true, "Space curve sizes geometrically")
    curveImg := flag.String("curve-out-img", "cmd/api/static/learning_curve.png", "Curve PNG")
    curveCsv := flag.String("curve-out-csv", "data/learning_curve.csv", "Curve CSV")
    flag.Parse()

    run := ulid.Make()
    logger := utils.Logger().With(zap.String("run", run.String()))
    defer logger.Sync()

    cfg, err := config.Load(*cfgPath)
    if err != nil { logger.Fatal("load config", zap.Error(err)) }

    if *regen {
        logger.Info("generating synthetic corpus", zap.Int("n", *n), zap.String("out", cfg.Corpus))
        if err := data.GenerateSyntheticMessages(*n, *spamRate, *seed, cfg.Corpus); err != nil {
            logger.Fatal("generate corpus", zap.Error(err))
        }
    }

    msgs, err := data.LoadTSV(cfg.Corpus)
    if err != nil { logger.Fatal("load corpus", zap.String("path", cfg.Corpus), zap.Error(err)) }
    if len(msgs) == 0 { logger.Fatal("empty corpus", zap.String("path", cfg.Corpus)) }

    train, test := data.StratifiedSplit(msgs, *testRatio, *seed)
    _, trainLabels := data.Split(train)
    _, testLabels := data.Split(test)
    pos := 0
    for _, m := range msgs { if m.Spam { pos++ } }
    logger.Info("class distribution",
        zap.Int("spam", pos), zap.Int("ham", len(msgs)-pos),
        zap.Int("train", len(train)), zap.Int("test", len(test)))

    start := time.Now()
    f, err := fit(*algo, cfg, *estimators, *lr, *seed, train, test)
    if err != nil { logger.Fatal("train", zap.String("algo", *algo), zap.Error(err)) }
    trainCM := models.NewConfusion(trainLabels, f.train)
    testCM := models.NewConfusion(testLabels, f.test)
    fields := []zap.Field{
        zap.String("model", f.name),
        zap.Float64("train_accuracy", trainCM.Accuracy()),
        zap.Float64("accuracy", testCM.Accuracy()),
        zap.Float64("precision", testCM.Precision()),
        zap.Float64("recall", testCM.Recall()),
        zap.Float64("f1", testCM.F1()),
        zap.Duration("took", time.Since(start)),
    }
    if f.clf != nil {
        st := f.clf.Stats()
        fields = append(fields, zap.Int("nodes", st.Nodes), zap.Int("leaves", st.Leaves), zap.Int("depth", st.Depth))
    }
    logger.Info("holdout metrics", fields...)
    fmt.Printf("%s: train accuracy %.4f, test accuracy %.4f, f1 %.4f\n", f.name, trainCM.Accuracy(), testCM.Accuracy(), testCM.F1())

    if *printTree && f.clf != nil {
        if err := f.clf.Print(os.Stdout); err != nil { logger.Error("print tree", zap.Error(err)) }
    }

    if *curve {
        sizes := report.CurveSizes(len(train), *curvePoints, *curveMin, *curveLog)
        c := report.Curve{Title: "Learning curve", XLabel: "size", YLabel: "metric"}
        trainAcc := make([]float64, len(sizes))
        testAcc := make([]float64, len(sizes))
        testF1 := make([]float64, len(sizes))
        for k, s := range sizes {
            sub := train[:s]
            _, subLabels := data.Split(sub)
            pf, err := fit(*algo, cfg, *estimators, *lr, *seed, sub, test)
            if err != nil { logger.Fatal("train curve point", zap.Int("size", s), zap.Error(err)) }
            trainAcc[k] = models.Accuracy(subLabels, pf.train)
            cm := models.NewConfusion(testLabels, pf.test)
            testAcc[k], testF1[k] = cm.Accuracy(), cm.F1()
            c.X = append(c.X, float64(s))
            logger.Debug("curve point", zap.Int("size", s), zap.Float64("train", trainAcc[k]), zap.Float64("test", testAcc[k]))
        }
        c.Series = []report.Series{
            {Name: "train_acc", Values: trainAcc},
            {Name: "test_acc", Values: testAcc},
            {Name: "test_f1", Values: testF1},
        }
        if err := c.WriteCSV(*curveCsv); err != nil {
            logger.Warn("write curve csv", zap.Error(err))
        }
        if err := c.SavePNG(*curveImg); err != nil {
            logger.Warn("write curve png", zap.Error(err))
        } else {
            logger.Info("learning curve written", zap.String("png", *curveImg), zap.String("csv", *curveCsv))
        }
    }
}

// fit trains algo on train with a fresh vectorizer and predicts both splits.
func fit(algo string, cfg *config.Config, estimators int, lr float64, seed int64, train, test []data.Message) (*fitted, error) {
    v, err := cfg.Vectorizer.Build()
    if err != nil { return nil, err }
    trTexts, trLabels := data.Split(train)
    teTexts, _ := data.Split(test)

    if algo == "dt" {
        clf, err := models.Train(trTexts, trLabels, v, cfg.Tree.Options()...)
        if err != nil { return nil, err }
        if cfg.Prune > 0 { clf.Prune(cfg.Prune) }
        ptr, err := clf.ClassifyBatch(trTexts)
        if err != nil { return nil, err }
        pte, err := clf.ClassifyBatch(teTexts)
        if err != nil { return nil, err }
        return &fitted{name: "DecisionTree", train: ptr, test: pte, clf: clf}, nil
    }

    X, err := v.FitTransform(trTexts)
    if err != nil { return nil, err }
    Xt, err := v.Transform(teTexts)
    if err != nil { return nil, err }
    mdl, err := constructModel(algo, cfg, estimators, lr, seed)
    if err != nil { return nil, err }
    if err := mdl.Fit(X, trLabels); err != nil { return nil, err }
    if p, ok := mdl.(models.Pruner); ok && cfg.Prune > 0 { p.Prune(cfg.Prune) }
    return &fitted{name: mdl.Name(), train: mdl.Predict(X), test: mdl.Predict(Xt)}, nil
}

func constructModel(algo string, cfg *config.Config, estimators int, lr float64, seed int64) (models.Model, error) {
    t := cfg.Tree
    switch algo {
    case "bagging":
        bg := models.NewBagging()
        bg.NEstimators, bg.Seed, bg.Workers = estimators, seed, t.Workers
        bg.MaxDepth, bg.MinSamples, bg.MinImpurityDecrease = t.MaxDepth, t.MinSamplesSplit, t.MinImpurityDecrease
        return bg, nil
    case "rf":
        rf := models.NewRandomForest()
        rf.NEstimators, rf.Seed, rf.Workers = estimators, seed, t.Workers
        rf.MaxDepth, rf.MinSamples, rf.MinImpurityDecrease = t.MaxDepth, t.MinSamplesSplit, t.MinImpurityDecrease
        return rf, nil
    case "gb":
        gb := models.NewGradientBoosting()
        gb.NEstimators, gb.LearningRate, gb.Workers = estimators, lr, t.Workers
        return gb, nil
    }
    return nil, fmt.Errorf("unknown algo %q", algo)
}
