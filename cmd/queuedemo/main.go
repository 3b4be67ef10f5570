package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xmh1011/replqueue/config"
	"github.com/xmh1011/replqueue/logging"
	"github.com/xmh1011/replqueue/memacct"
	"github.com/xmh1011/replqueue/metrics"
	"github.com/xmh1011/replqueue/param"
	"github.com/xmh1011/replqueue/queue"
	"github.com/xmh1011/replqueue/transport/simqueue"
	"github.com/xmh1011/replqueue/walog"
)

// Options holds the demo's command-line configuration.
type Options struct {
	ConfigPath string
	PeerCount  int
	OpCount    int
	OpSizeByte int
}

var opts Options

func main() {
	rootCmd := &cobra.Command{
		Use:   "queuedemo",
		Short: "Run a leader replication queue against simulated followers",
		Run:   runDemo,
	}

	rootCmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to a TOML config file (optional)")
	rootCmd.Flags().IntVar(&opts.PeerCount, "peers", 3, "Number of simulated followers")
	rootCmd.Flags().IntVar(&opts.OpCount, "ops", 200, "Number of operations to propose")
	rootCmd.Flags().IntVar(&opts.OpSizeByte, "op-size", 256, "Bytes charged per proposed operation")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runDemo(_ *cobra.Command, _ []string) {
	log := logging.New(logging.Options{})

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}

	srv := NewServer(cfg, opts, log)
	srv.Start()

	waitForSignal(srv, log)
}

// Server wires a PeerMessageQueue to a fleet of simulated followers, one
// simqueue.Worker per peer, and a proposer goroutine that appends ops until
// OpCount is reached.
type Server struct {
	opts    Options
	queue   *queue.PeerMessageQueue
	wal     *walog.InMemory
	workers []*simqueue.Worker
	log     zerolog.Logger

	cancel context.CancelFunc
}

// NewServer wires a queue with a two-level memory accountant (a process-wide
// global level and a per-server local level, mirroring the hierarchy
// described for a leader running several queues) and the ambient log/metrics
// collaborators.
func NewServer(cfg config.Config, options Options, log zerolog.Logger) *Server {
	globalAcct := memacct.New("global", cfg.GlobalSoftLimitBytes, cfg.GlobalHardLimitBytes, nil)
	localAcct := memacct.New("leader", cfg.LocalSoftLimitBytes, cfg.LocalHardLimitBytes, globalAcct)

	wal := walog.NewInMemory()
	mc := metrics.NewCollector()

	q := queue.New(cfg, localAcct,
		queue.WithLogAppender(wal),
		queue.WithMetrics(mc),
		queue.WithLogger(log),
	)

	return &Server{opts: options, queue: q, wal: wal, log: log}
}

// Start initializes the queue, tracks one simulated follower per peer,
// launches a worker per peer, and begins proposing operations.
func (s *Server) Start() {
	if err := s.queue.Init(param.MinOpID, 1, majoritySize(s.opts.PeerCount)); err != nil {
		s.log.Fatal().Err(err).Msg("failed to initialize queue")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for i := 0; i < s.opts.PeerCount; i++ {
		id := uuid.New()
		if err := s.queue.TrackPeer(id); err != nil {
			s.log.Fatal().Err(err).Msg("failed to track peer")
		}
		follower := simqueue.NewInMemoryFollower(id, 1)
		worker := simqueue.NewWorker(id, s.queue, follower, 5*time.Millisecond, s.log)
		s.workers = append(s.workers, worker)
		go worker.Run(ctx)
	}

	go s.propose(ctx)
	s.log.Info().Int("peers", s.opts.PeerCount).Int("ops", s.opts.OpCount).Msg("replication queue demo started")
}

// Stop cancels every worker and the proposer.
func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	snap := s.queue.Metrics().Snapshot()
	s.log.Info().
		Uint64("appended", snap.OpsAppended).
		Uint64("rejected", snap.OpsRejected).
		Uint64("trimmed", snap.OpsTrimmed).
		Stringer("committed", s.queue.CommittedIndex()).
		Msg("replication queue demo stopped")
}

func (s *Server) propose(ctx context.Context) {
	for i := 1; i <= s.opts.OpCount; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		op := param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: uint64(i)}, nil, s.opts.OpSizeByte)
		for s.queue.AppendOperation(op) != nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Millisecond):
			}
		}
	}
}

func majoritySize(peerCount int) int {
	// majoritySize is defined over the tracked-peer set itself; the leader
	// is not counted as a separate voter (queue.computeCommitIndex).
	return peerCount/2 + 1
}

func waitForSignal(srv *Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("shutting down")
	srv.Stop()
}
