// Package vm interprets mir modules over a word machine: byte-addressed
// memory, word storage, and revert/return/stop termination.
//
// Назначение: исполнение сгенерированного кода в тестах и `yulc run`.
// Revert data of the Panic(uint256) shape is decoded into a layout.PanicCode.
package vm
