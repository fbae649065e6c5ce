package provider

import "context"

type fakePhantom struct {
	isPhantom bool
	key       string
	respKey   string
	err       error
	lastOpts  ConnectOptions
}

func (f *fakePhantom) IsPhantom() bool { return f.isPhantom }

func (f *fakePhantom) Connect(_ context.Context, opts ConnectOptions) (PhantomConnectResponse, error) {
	f.lastOpts = opts
	if f.err != nil {
		return PhantomConnectResponse{}, f.err
	}
	return PhantomConnectResponse{PublicKey: f.respKey}, nil
}

func (f *fakePhantom) PublicKey() string { return f.key }

type fakeEthereum struct {
	isMetaMask bool
	selected   string
	results    map[string]any
	errs       map[string]error
	calls      []string
}

func (f *fakeEthereum) IsMetaMask() bool { return f.isMetaMask }

func (f *fakeEthereum) Request(_ context.Context, args RequestArguments) (any, error) {
	f.calls = append(f.calls, args.Method)
	if err := f.errs[args.Method]; err != nil {
		return nil, err
	}
	return f.results[args.Method], nil
}

func (f *fakeEthereum) SelectedAddress() string { return f.selected }

type fakeSolflareWallet struct{ key string }

func (w fakeSolflareWallet) PublicKey() string { return w.key }

type fakeSolflare struct {
	isSolflare bool
	connected  bool
	key        string
	respKey    string
	wallet     SolflareWallet
	err        error
}

func (f *fakeSolflare) IsSolflare() bool  { return f.isSolflare }
func (f *fakeSolflare) IsConnected() bool { return f.connected }
func (f *fakeSolflare) PublicKey() string { return f.key }

func (f *fakeSolflare) Connect(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.connected = true
	return f.respKey, nil
}

func (f *fakeSolflare) Wallet() SolflareWallet { return f.wallet }
