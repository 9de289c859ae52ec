// Package linreg implements ordinary least-squares linear regression trained
// by batch gradient descent on top of the tensor engine.
//
// The model computes predictions as X·w + b, where X is an (m, n) feature
// matrix, w an (n, 1) weight column and b a scalar bias. Each iteration
// evaluates the mean squared error, computes the gradients
//
//	dw = Xᵀ·(pred − y) / m
//	db = Σ(pred − y) / m
//
// and steps against them. Training stops after the configured number of
// iterations or once the cost changes by less than the tolerance.
//
// Example:
//
//	model := linreg.New(linreg.Config{LearningRate: 0.1, Iterations: 1000})
//	result, err := model.Fit(ctx, X, y)
//	if err != nil {
//	    return err
//	}
//	pred, err := model.Predict(X)
package linreg
