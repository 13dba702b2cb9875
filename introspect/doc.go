// Package introspect binds properties onto arbitrary Go values through their
// accessor methods.
//
// A getter is an exported method without parameters named GetXxx, or IsXxx
// when it returns a bool. A setter takes one parameter, is named SetXxx and
// returns nothing or an error; a builder setter returns the receiver type (or
// a type the receiver embeds or implements) for chaining. The letter after the
// Get/Is/Set word must be upper case, so SetupSomething is not a setter of
// "upSomething". The property name is the rest of the method name with its
// first letter lower-cased: GetGoldCustomer and IsGoldCustomer both read
// "goldCustomer".
//
// Accessor tables are built once per runtime type and kept by a Cache.
// Package level functions use DefaultCache; tests and embedders that need
// isolation build their own with New.
//
// Go has no method overloading. A property gets more than one setter when an
// additional setter-shaped method is registered for it:
//
//	introspect.RegisterOverload(reflect.TypeFor[*Bean](), "bean", "SetBeanName")
//
// SetProperty picks the overload whose parameter type fits the value best
// (identical, then assignable, then lossless numeric widening) and falls back
// to a Converter, trying the overloads in order.
package introspect
