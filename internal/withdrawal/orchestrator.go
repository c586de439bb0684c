package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cex-withdraw-go/internal/amount"
	"cex-withdraw-go/internal/exchange"
	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Options tunes a batch. Zero-valued collaborators fall back to the defaults noted per field.
type Options struct {
	Delay                 models.DelayRange
	SkipDelayAfterFailure bool

	// Amounts defaults to amount.NewGenerator(nil)
	Amounts AmountSource
	// Journal is optional; failures writing to it are logged only
	Journal store.RunRecorder
	// Sleep defaults to a context-aware timer
	Sleep SleepFunc
	// Random draws delay seconds; defaults to amount.Global
	Random amount.Source
}

// Orchestrator drives one venue through auth, balance check, chain selection
// and the sequential per-wallet withdrawal loop.
type Orchestrator struct {
	selector ChainSelector
	resolver RangeResolver
	opts     Options
}

func NewOrchestrator(selector ChainSelector, resolver RangeResolver, opts Options) *Orchestrator {
	if opts.Amounts == nil {
		opts.Amounts = amount.NewGenerator(nil)
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Random == nil {
		opts.Random = amount.Global
	}
	return &Orchestrator{selector: selector, resolver: resolver, opts: opts}
}

// Run withdraws req.Token to every wallet in order and returns the outcome per address.
// Fatal errors return the partial result accumulated so far together with the error.
// req is owned by the run: Address and Chain are set, and Amount may be replaced once.
func (o *Orchestrator) Run(ctx context.Context, venue Capability, req *models.WithdrawalRequest, wallets []string) (*models.WithdrawalResult, error) {
	result := models.NewWithdrawalResult()

	wallets = uniqueWallets(wallets)
	if len(wallets) == 0 {
		zap.L().Error("No wallets to withdraw to")
		return result, ErrNoWallets
	}

	if err := venue.Authenticate(ctx); err != nil {
		return result, err
	}

	if err := o.checkBalance(ctx, venue, req, len(wallets)); err != nil {
		return result, err
	}

	chain, err := o.selectChain(ctx, venue, req)
	if err != nil {
		return result, err
	}
	req.Chain = &chain

	if err := o.adjustAmountRange(ctx, venue, req); err != nil {
		return result, err
	}

	run := o.startRun(ctx, venue, req, len(wallets))
	err = o.withdrawAll(ctx, venue, req, wallets, run, result)
	o.finishRun(run, result, err)

	return result, err
}

func (o *Orchestrator) checkBalance(ctx context.Context, venue Capability, req *models.WithdrawalRequest, walletCount int) error {
	zap.L().Info("Checking balance", zap.String("venue", venue.Name()), zap.String("token", req.Token))

	balance, err := venue.FetchBalance(ctx, req.Token)
	if err != nil {
		zap.L().Error("Failed to fetch balance", zap.String("venue", venue.Name()), zap.Error(err))
		return err
	}

	count := decimal.NewFromInt(int64(walletCount))
	required := req.Amount.Min.Mul(count)
	expected := req.Amount.Average().Mul(count)

	zap.L().Info("Token balance",
		zap.String("token", req.Token),
		zap.String("balance", amount.Format(balance)))

	if balance.LessThan(required) {
		zap.L().Error("Insufficient balance for the wallet count",
			zap.String("balance", amount.Format(balance)),
			zap.String("required", amount.Format(required)),
			zap.Int("wallets", walletCount))
		return fmt.Errorf("%w: balance %s %s is below %s required for %d wallets",
			ErrInsufficientFunds, amount.Format(balance), req.Token, amount.Format(required), walletCount)
	}
	if balance.LessThan(expected) {
		zap.L().Warn("Balance may not cover every wallet at the average amount",
			zap.String("balance", amount.Format(balance)),
			zap.String("expected", amount.Format(expected)),
			zap.Int("wallets", walletCount))
	}
	return nil
}

func (o *Orchestrator) selectChain(ctx context.Context, venue Capability, req *models.WithdrawalRequest) (models.ChainOption, error) {
	chains, err := venue.ListWithdrawableNetworks(ctx, req.Token)
	if err != nil {
		zap.L().Error("Failed to list withdrawal networks", zap.String("venue", venue.Name()), zap.Error(err))
		return models.ChainOption{}, err
	}

	options := chainOptions(chains)
	if len(options) == 0 {
		zap.L().Error("No withdrawal networks available",
			zap.String("venue", venue.Name()),
			zap.String("token", req.Token))
		return models.ChainOption{}, fmt.Errorf("%w: %s on %s", ErrNoChainsAvailable, req.Token, venue.Name())
	}

	chosen, err := o.selector.SelectChain(ctx, options)
	if err != nil {
		zap.L().Error("Chain selection failed", zap.Error(err))
		return models.ChainOption{}, err
	}

	offered, ok := chains[chosen.Key]
	if !ok || !offered.WithdrawEnable {
		zap.L().Error("Selected chain was not offered", zap.String("chain", chosen.Key))
		return models.ChainOption{}, fmt.Errorf("%w: %s", ErrChainNotOffered, chosen.Key)
	}

	zap.L().Info("Chain selected",
		zap.String("chain", chosen.Key),
		zap.String("chain_id", offered.ChainId),
		zap.String("fee", amount.Format(offered.WithdrawFee)),
		zap.String("min", amount.Format(offered.WithdrawMin)))
	return models.ChainOption{Key: chosen.Key, ChainInfo: offered}, nil
}

// chainOptions returns the enabled chains sorted by key
func chainOptions(chains map[string]models.ChainInfo) []models.ChainOption {
	options := make([]models.ChainOption, 0, len(chains))
	for key, info := range chains {
		if !info.WithdrawEnable {
			continue
		}
		options = append(options, models.ChainOption{Key: key, ChainInfo: info})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Key < options[j].Key })
	return options
}

func (o *Orchestrator) adjustAmountRange(ctx context.Context, venue Capability, req *models.WithdrawalRequest) error {
	chainMin := req.Chain.WithdrawMin
	if !chainMin.GreaterThan(req.Amount.Min) {
		return nil
	}

	zap.L().Warn("Configured minimum is below the chain minimum",
		zap.String("venue", venue.Name()),
		zap.String("configured", amount.Format(req.Amount.Min)),
		zap.String("chain_min", amount.Format(chainMin)))

	if o.resolver == nil {
		return fmt.Errorf("%w: minimum %s is below chain minimum %s", ErrInvalidAmountRange, req.Amount.Min.String(), chainMin.String())
	}

	replacement, err := o.resolver.ResolveRange(ctx, chainMin, req.Amount)
	if err != nil {
		zap.L().Error("Amount range resolution failed", zap.Error(err))
		return err
	}

	if replacement.Min.LessThan(chainMin) {
		zap.L().Error("Replacement minimum is still below the chain minimum",
			zap.String("min", replacement.Min.String()),
			zap.String("chain_min", chainMin.String()))
		return fmt.Errorf("%w: minimum %s is below chain minimum %s", ErrInvalidAmountRange, replacement.Min.String(), chainMin.String())
	}
	if err := amount.ValidateRange(replacement, venue.MaxDecimalPlaces()); err != nil {
		zap.L().Error("Replacement amount range rejected", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidAmountRange, err)
	}

	previous := req.Amount
	req.Amount = replacement
	zap.L().Info("Amount range replaced",
		zap.String("previous", previous.String()),
		zap.String("current", replacement.String()),
		zap.String("token", req.Token))
	return nil
}

func (o *Orchestrator) withdrawAll(ctx context.Context, venue Capability, req *models.WithdrawalRequest, wallets []string, run *models.Run, result *models.WithdrawalResult) error {
	for i, address := range wallets {
		if err := ctx.Err(); err != nil {
			zap.L().Warn("Batch interrupted", zap.Int("processed", result.Len()), zap.Int("wallets", len(wallets)))
			return err
		}

		req.Address = address
		value, err := o.opts.Amounts.Generate(req.Amount, req.DecimalPlaces, venue.MaxDecimalPlaces())
		if err != nil {
			zap.L().Error("Unable to generate withdrawal amount", zap.String("address", address), zap.Error(err))
			return err
		}

		// an accepted request is not cut off by an interrupt; the batch stops after it returns
		withdrawalId, err := venue.SubmitWithdrawal(context.WithoutCancel(ctx), exchange.Order{
			Token:   req.Token,
			Amount:  value,
			Address: address,
			Chain:   *req.Chain,
		})
		success := err == nil
		result.Set(address, success)
		o.recordAttempt(run, i, address, value, req.Chain.ChainId, withdrawalId, err)

		if success {
			zap.L().Info("Withdrawal submitted",
				zap.Int("wallet", i+1),
				zap.String("address", address),
				zap.String("amount", amount.Format(value)),
				zap.String("token", req.Token),
				zap.String("withdrawal_id", withdrawalId))
		} else {
			zap.L().Error("Withdrawal failed",
				zap.Int("wallet", i+1),
				zap.String("address", address),
				zap.String("amount", amount.Format(value)),
				zap.Error(err))
			if errors.Is(err, exchange.ErrAuthentication) && ctx.Err() == nil {
				return err
			}
		}

		if err := ctx.Err(); err != nil {
			zap.L().Warn("Batch interrupted", zap.Int("processed", result.Len()), zap.Int("wallets", len(wallets)))
			return err
		}

		if i == len(wallets)-1 {
			break
		}
		if !success && o.opts.SkipDelayAfterFailure {
			continue
		}
		if err := o.pause(ctx); err != nil {
			zap.L().Warn("Batch interrupted during delay", zap.Int("processed", result.Len()), zap.Int("wallets", len(wallets)))
			return err
		}
	}
	return nil
}

func (o *Orchestrator) pause(ctx context.Context) error {
	delay := o.opts.Delay
	lo, hi := delay.MinSeconds, delay.MaxSeconds
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi <= 0 {
		return ctx.Err()
	}
	lo = max(lo, 0)

	seconds := lo + o.opts.Random.IntN(hi-lo+1)
	zap.L().Info("Sleeping before next wallet", zap.Int("seconds", seconds))
	return o.opts.Sleep(ctx, time.Duration(seconds)*time.Second)
}

func (o *Orchestrator) startRun(ctx context.Context, venue Capability, req *models.WithdrawalRequest, walletCount int) *models.Run {
	if o.opts.Journal == nil {
		return nil
	}
	run, err := o.opts.Journal.StartRun(ctx, store.StartRunParams{
		Venue:       venue.Name(),
		Token:       req.Token,
		Chain:       req.Chain.Key,
		WalletCount: walletCount,
		Amount:      req.Amount,
	})
	if err != nil {
		zap.L().Warn("Unable to journal withdrawal run", zap.Error(err))
		return nil
	}
	return run
}

func (o *Orchestrator) recordAttempt(run *models.Run, index int, address string, value decimal.Decimal, chainId, withdrawalId string, submitErr error) {
	if run == nil {
		return
	}
	// The attempt already happened; record it even if the batch is being cancelled.
	_, err := o.opts.Journal.RecordAttempt(context.Background(), store.AttemptParams{
		RunId:        run.Id,
		Sequence:     index + 1,
		Address:      address,
		Amount:       value,
		Chain:        chainId,
		WithdrawalId: withdrawalId,
		Err:          submitErr,
	})
	if err != nil {
		zap.L().Warn("Unable to journal withdrawal attempt", zap.String("address", address), zap.Error(err))
	}
}

func (o *Orchestrator) finishRun(run *models.Run, result *models.WithdrawalResult, runErr error) {
	if run == nil {
		return
	}

	status := models.RunStatusCompleted
	switch {
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		status = models.RunStatusInterrupted
	case runErr != nil:
		status = models.RunStatusAborted
	}

	succeeded, failed := result.Counts()
	err := o.opts.Journal.FinishRun(context.Background(), store.FinishRunParams{
		RunId:      run.Id,
		Status:     status,
		Succeeded:  succeeded,
		Failed:     failed,
		FinishedAt: time.Now().UTC(),
	})
	if err != nil {
		zap.L().Warn("Unable to close journal run", zap.String("run_id", run.Id), zap.Error(err))
	}
}

// uniqueWallets drops repeated addresses, keeping the first occurrence
func uniqueWallets(wallets []string) []string {
	seen := make(map[string]struct{}, len(wallets))
	out := make([]string, 0, len(wallets))
	for _, w := range wallets {
		if _, dup := seen[w]; dup {
			zap.L().Warn("Skipping duplicate wallet", zap.String("address", w))
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
