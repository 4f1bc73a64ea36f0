// Command seqflow runs a fixed demonstration pipeline over one or two
// FASTQ inputs: read R1 (and R2, if given), optionally locate and trim a
// 3' adapter off seq1, then write the surviving reads back out. It
// exists to exercise the graph/fastqio packages end to end; real
// pipelines are expected to be assembled programmatically against the
// graph package's node types.
package main

import (
	"context"
	"flag"
	"runtime"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/seqflow/expr"
	"github.com/grailbio/seqflow/fastqio"
	"github.com/grailbio/seqflow/graph"
	"github.com/grailbio/seqflow/inline"
	"github.com/grailbio/seqflow/matchseq"
	"github.com/grailbio/seqflow/pattern"
	"github.com/grailbio/seqflow/read"
	"github.com/klauspost/compress/gzip"
)

var (
	r1Path  = flag.String("r1", "", "Path to the R1 FASTQ(.gz) input (required)")
	r2Path  = flag.String("r2", "", "Path to the R2 FASTQ(.gz) input (optional; omit for single-end)")
	out1    = flag.String("out1", "", "Output path for R1 (required); a .gz suffix gzips the output")
	out2    = flag.String("out2", "", "Output path for R2 (required if -r2 is set)")
	adapter = flag.String("adapter", "", "3' adapter sequence to locate and trim off seq1 (optional)")
	threads = flag.Int("threads", runtime.NumCPU(), "Number of worker goroutines driving the pipeline")
)

func main() {
	flag.Parse()
	shutdown := grail.Init()
	defer shutdown()

	if *r1Path == "" || *out1 == "" {
		log.Fatal("-r1 and -out1 are required")
	}
	if (*r2Path == "") != (*out2 == "") {
		log.Fatal("-r2 and -out2 must be given together")
	}

	ctx := vcontext.Background()
	src, err := buildSource(ctx, *r1Path, *r2Path)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}

	cache := fastqio.NewWriterCache()
	g, err := buildGraph(src, cache)
	if err != nil {
		log.Fatalf("building pipeline: %v", err)
	}

	if err := g.RunWithThreads(*threads); err != nil {
		log.Fatalf("running pipeline: %v", err)
	}
	if err := cache.Close(); err != nil {
		log.Fatalf("closing outputs: %v", err)
	}
	log.Printf("seqflow: done")
}

// buildSource opens r1 (and r2, if given) and wires them into a
// fastqio.Source with one lane per file.
func buildSource(ctx context.Context, r1, r2 string) (*fastqio.Source, error) {
	name1 := read.Name1
	r1Scanner, r1Origin, err := openFastq(ctx, r1)
	if err != nil {
		return nil, err
	}
	lanes := []fastqio.Lane{{NameType: &name1, SeqType: read.Seq1, Scanner: r1Scanner, Origin: r1Origin}}
	if r2 != "" {
		name2 := read.Name2
		r2Scanner, r2Origin, err := openFastq(ctx, r2)
		if err != nil {
			return nil, err
		}
		lanes = append(lanes, fastqio.Lane{NameType: &name2, SeqType: read.Seq2, Scanner: r2Scanner, Origin: r2Origin})
	}
	return fastqio.NewSource(lanes...), nil
}

// openFastq opens path (transparently gunzipping a .gz suffix) and wraps
// it in a fastqio.Scanner, using grailbio/base/file as the open seam so
// local and remote (e.g. S3) paths are interchangeable.
func openFastq(ctx context.Context, path string) (*fastqio.Scanner, *read.Origin, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "opening", path)
	}
	r := f.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, errors.E(err, "gunzip", path)
		}
		return fastqio.NewScanner(gz), read.FileOrigin(path), nil
	}
	return fastqio.NewScanner(r), read.FileOrigin(path), nil
}

// buildGraph assembles the demonstration pipeline: source, an optional
// adapter-trim match/cut, then an output sink.
func buildGraph(src *fastqio.Source, cache *fastqio.WriterCache) (*graph.Graph, error) {
	nodes := []graph.Node{graph.NewSourceNode(src)}

	if *adapter != "" {
		insertLabel, err := inline.NewChecked([]byte("insert"))
		if err != nil {
			return nil, err
		}
		patterns := pattern.FromLiterals([][]byte{[]byte(*adapter)})
		nodes = append(nodes, &graph.MatchNode{
			Type:      read.Seq1,
			Label:     inline.Star,
			Patterns:  patterns,
			MatchType: matchseq.MatchType{Kind: matchseq.ExactSearch},
			NewLabels: []*inline.String{&insertLabel, nil, nil},
		})
	}

	nameFmt := func(t string) (*expr.FormatExpr, error) { return expr.ParseFormat([]byte("{" + t + ".*}")) }
	pathFmt := func(p string) (*expr.FormatExpr, error) { return expr.ParseFormat([]byte(p)) }

	name1Fmt, err := nameFmt("name1")
	if err != nil {
		return nil, err
	}
	seq1Path, err := pathFmt(*out1)
	if err != nil {
		return nil, err
	}
	label1 := inline.Star
	if *adapter != "" {
		label1, err = inline.NewChecked([]byte("insert"))
		if err != nil {
			return nil, err
		}
	}
	outNode := &graph.OutputFastqNode{
		Cache:  cache,
		Type1:  read.Seq1,
		Label1: label1,
		Name1:  name1Fmt,
		Path1:  seq1Path,
	}
	if *r2Path != "" {
		name2Fmt, err := nameFmt("name2")
		if err != nil {
			return nil, err
		}
		seq2Path, err := pathFmt(*out2)
		if err != nil {
			return nil, err
		}
		outNode.HasR2 = true
		outNode.Type2 = read.Seq2
		outNode.Label2 = inline.Star
		outNode.Name2 = name2Fmt
		outNode.Path2 = seq2Path
	}
	nodes = append(nodes, outNode)

	return graph.New(nodes...), nil
}
