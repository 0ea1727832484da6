package scenario

// Enchant stands for the spell checking integration. It is the default of
// its category and needs no setup.
type Enchant struct{ Base }

func (*Enchant) Kind() string             { return "Enchant" }
func (*Enchant) Category() Category       { return CategoryEnchant }
func (*Enchant) Name() string             { return "Enchant" }
func (*Enchant) IsImplemented() bool      { return true }
func (*Enchant) IsPlaceholder(Layer) bool { return true }
