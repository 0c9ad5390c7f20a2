package component

// DamageConfig tunes contact damage. Times are in seconds.
type DamageConfig struct {
	Amount          int     `yaml:"amount"`
	Interval        float64 `yaml:"interval"`
	DestroyAfterHit bool    `yaml:"destroy_after_hit"`
	FlashDuration   float64 `yaml:"flash_duration"`
}

func DefaultDamageConfig() DamageConfig {
	return DamageConfig{
		Amount:        1,
		Interval:      0.1,
		FlashDuration: 0.1,
	}
}

// DamageResult tells the host what a contact did.
type DamageResult struct {
	Applied bool
	// Flash is the tint duration for the dealer, zero when nothing landed.
	Flash   float64
	Destroy bool
}

// DamageDealer hurts whatever it touches, at most once per Interval while
// the contact persists.
type DamageDealer struct {
	cfg     DamageConfig
	lastHit float64
	everHit bool
}

func NewDamageDealer(cfg DamageConfig) *DamageDealer {
	return &DamageDealer{cfg: cfg}
}

func (d *DamageDealer) Config() DamageConfig {
	return d.cfg
}

// Enter handles the first tick of a contact; it always tries to hurt.
func (d *DamageDealer) Enter(now float64, target Damageable) DamageResult {
	return d.hit(now, target)
}

// Stay handles an ongoing contact and is gated by Interval.
func (d *DamageDealer) Stay(now float64, target Damageable) DamageResult {
	if d.everHit && now < d.lastHit+d.cfg.Interval {
		return DamageResult{}
	}
	return d.hit(now, target)
}

func (d *DamageDealer) hit(now float64, target Damageable) DamageResult {
	if target == nil || !target.TakeDamage(d.cfg.Amount) {
		return DamageResult{}
	}
	d.lastHit = now
	d.everHit = true
	return DamageResult{
		Applied: true,
		Flash:   d.cfg.FlashDuration,
		Destroy: d.cfg.DestroyAfterHit,
	}
}
