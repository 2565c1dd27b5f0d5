package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/ppc"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/config"
)

var (
	toolName   = flag.String("tool", "", "报告工具名："+strings.Join(tools.Names(), ", "))
	inputPath  = flag.String("input", "", "输入 CSV 文件路径")
	outputPath = flag.String("output", "", "输出 CSV 文件路径（缺省输出到 stdout）")
	configPath = flag.String("config", "", "配置文件路径（可选，用于自定义阈值）")
)

func main() {
	// .env 可覆盖环境变量（不存在时忽略）
	_ = godotenv.Load()

	flag.Parse()

	if *toolName == "" || *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := loadOptions(*configPath)

	tool, err := tools.New(*toolName, opts)
	if err != nil {
		fatalf("%v\navailable tools: %s", err, strings.Join(tools.Names(), ", "))
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fatalf("read input failed: %v", err)
	}

	headers, records, err := pipeline.DecodeString(string(data))
	if err != nil {
		fatalf("parse csv failed: %v", err)
	}

	runner := pipeline.NewRunner(tool)

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetDescription(fmt.Sprintf("processing %s", *toolName)),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	runner.OnRecord = func(int) { _ = bar.Add(1) }

	batch, err := runner.Run(headers, records)
	if err != nil {
		fatalf("%v", err)
	}

	out, err := pipeline.Export(tool, batch)
	if err != nil {
		fatalf("export failed: %v", err)
	}

	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, []byte(out), 0o644); err != nil {
			fatalf("write output failed: %v", err)
		}
	} else {
		fmt.Print(out)
	}

	// 处理摘要
	fmt.Fprintf(os.Stderr, "\ntool:      %s\n", *toolName)
	fmt.Fprintf(os.Stderr, "total:     %d rows\n", len(records))
	fmt.Fprintf(os.Stderr, "processed: %d rows\n", len(batch.Results))
	fmt.Fprintf(os.Stderr, "skipped:   %d rows\n", len(batch.Skipped))
	for _, s := range batch.Skipped {
		fmt.Fprintf(os.Stderr, "  row %d: %s\n", s.Index, s.Reason)
	}
	if *outputPath != "" {
		fmt.Fprintf(os.Stderr, "output:    %s\n", *outputPath)
	}
}

// loadOptions 配置缺省时使用文档默认阈值
func loadOptions(path string) tools.Options {
	if path == "" {
		return tools.DefaultOptions()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fatalf("load config failed: %v", err)
	}

	return tools.Options{
		PPC: ppc.Thresholds{
			HighACoS:        cfg.Tools.PPC.HighACoS,
			LowCTR:          cfg.Tools.PPC.LowCTR,
			LowConversion:   cfg.Tools.PPC.LowConversion,
			LowClicks:       cfg.Tools.PPC.LowClicks,
			AutoHarvestACoS: cfg.Tools.PPC.AutoHarvestACoS,
		},
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
