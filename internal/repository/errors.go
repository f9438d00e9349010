package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysql 唯一键冲突错误码
const mysqlDuplicateEntry = 1062

var (
	// ErrConstraintViolation 唯一字段冲突
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrNotFound 按ID查找不到记录
	ErrNotFound = errors.New("record not found")
)

// StoreError 存储层其他失败，保留原始错误
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// translate 将驱动错误归类为 ErrConstraintViolation / ErrNotFound / *StoreError
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrConstraintViolation)
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%s: %w", op, ErrConstraintViolation)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return &StoreError{Op: op, Err: err}
}
